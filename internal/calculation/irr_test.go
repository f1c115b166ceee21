package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV(t *testing.T) {
	flows := []float64{-1000, 600, 600}

	// At 0% the NPV is the plain sum.
	assert.InDelta(t, 200, npv(0, flows), 1e-9)

	// At 10%: -1000 + 600/1.1 + 600/1.21
	assert.InDelta(t, 41.3223140496, npv(0.10, flows), 1e-9)
}

func TestIRRSimpleLoan(t *testing.T) {
	rate, ok := irr([]float64{-1000, 1100})
	require.True(t, ok)
	assert.InDelta(t, 0.10, rate, 1e-8)
}

func TestIRRMultiYear(t *testing.T) {
	flows := []float64{-1000, 500, 500, 500}
	rate, ok := irr(flows)
	require.True(t, ok)

	// The solved rate zeroes the NPV.
	assert.InDelta(t, 0, npv(rate, flows), 1e-6)
	assert.Greater(t, rate, 0.0)
}

func TestIRRNegativeReturn(t *testing.T) {
	// Paying 1000 to get back 900 total loses money.
	flows := []float64{-1000, 300, 300, 300}
	rate, ok := irr(flows)
	require.True(t, ok)
	assert.Less(t, rate, 0.0)
	assert.Greater(t, rate, -1.0)
	assert.InDelta(t, 0, npv(rate, flows), 1e-6)
}

func TestIRRNoRoot(t *testing.T) {
	_, ok := irr([]float64{-1000, -500, -500})
	assert.False(t, ok)
}

func TestIRRDegenerateInputs(t *testing.T) {
	_, ok := irr(nil)
	assert.False(t, ok)

	_, ok = irr([]float64{-1000})
	assert.False(t, ok)
}

func TestIRRLongHorizon(t *testing.T) {
	// 30 level receipts against an up-front payment, the shape the
	// scoring produces.
	flows := make([]float64, 31)
	flows[0] = -139000
	for i := 1; i < 31; i++ {
		flows[i] = 11000
	}

	rate, ok := irr(flows)
	require.True(t, ok)
	assert.False(t, math.IsNaN(rate))
	assert.InDelta(t, 0, npv(rate, flows), 1e-4)
	assert.Greater(t, rate, 0.0)
}
