package calculation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

func testProfile() *domain.UserProfile {
	return &domain.UserProfile{
		BirthDate:          time.Date(1964, time.March, 15, 0, 0, 0, 0, time.UTC),
		MaritalStatus:      domain.FilingSingle,
		TraditionalSavings: dec(500000),
		RothSavings:        decimal.Zero,
	}
}

func testRunDate() time.Time {
	return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
}

func testEngine() *CalculationEngine {
	repo := NewTaxLawRepository(testTaxLawTable(), dec(0.015))
	return NewCalculationEngine(repo)
}

func TestEngineRun(t *testing.T) {
	result, err := testEngine().Run(context.Background(), testProfile(), testAssumptions(), testRunDate())
	require.NoError(t, err)

	assert.Equal(t, 2025, result.RunYear)
	assert.Equal(t, 2026, result.StartYear)

	// 500k single: baseline, standard deduction, rungs through the
	// 32% bracket, full conversion.
	require.Len(t, result.Groups, 8)
	assert.Len(t, result.Years, 8*30)
	assert.Len(t, result.Conversions, 7)
	assert.Len(t, result.Incrementals, 7)

	for _, g := range result.Groups {
		assert.Len(t, result.GroupYears(g.Num), 30)
	}

	// Run-level scalars.
	af := AnnuityFactor(dec(0.05), 30)
	assert.True(t, result.Distribution.Equal(dec(500000).Mul(af)))
	assert.True(t, result.AnnuityFactorMultiple.Equal(af.Mul(dec(30))))
	assert.True(t, result.BaseDuration.GreaterThan(decimal.Zero))
}

func TestEngineRunStartYearFloor(t *testing.T) {
	profile := testProfile()
	// Born 1958: already past 62 at the 2025 run date.
	profile.BirthDate = time.Date(1958, time.March, 15, 0, 0, 0, 0, time.UTC)

	result, err := testEngine().Run(context.Background(), profile, testAssumptions(), testRunDate())
	require.NoError(t, err)

	// Distributions can never start in the past; the floor is the
	// year after the run year.
	assert.Equal(t, 2026, result.StartYear)
}

func TestEngineRunAdjustsBalancesToRunYearEnd(t *testing.T) {
	profile := testProfile()
	// A birthday late in the year leaves the profile age one year
	// behind the year arithmetic, so balances grow one year.
	profile.BirthDate = time.Date(1963, time.December, 20, 0, 0, 0, 0, time.UTC)

	result, err := testEngine().Run(context.Background(), profile, testAssumptions(), testRunDate())
	require.NoError(t, err)

	grown := dec(500000).Mul(dec(1.05))
	assert.True(t, result.Groups[0].TraditionalSavings.Equal(grown),
		"got %s want %s", result.Groups[0].TraditionalSavings, grown)
}

func TestEngineRunDeterministic(t *testing.T) {
	first, err := testEngine().Run(context.Background(), testProfile(), testAssumptions(), testRunDate())
	require.NoError(t, err)
	second, err := testEngine().Run(context.Background(), testProfile(), testAssumptions(), testRunDate())
	require.NoError(t, err)

	require.Len(t, second.Years, len(first.Years))
	for i := range first.Years {
		assert.True(t, first.Years[i].AfterTaxCashFlow.Equal(second.Years[i].AfterTaxCashFlow))
	}
	require.Len(t, second.Conversions, len(first.Conversions))
	for i := range first.Conversions {
		assert.True(t, first.Conversions[i].IRR.Equal(second.Conversions[i].IRR))
		assert.True(t, first.Conversions[i].ConversionTax.Equal(second.Conversions[i].ConversionTax))
	}
}

// A converter who retires in a low bracket but pays a higher average
// rate on the lump sum should see that reflected in the scoring: the
// baseline's lifetime marginal rate sits below the full conversion's
// up-front rate.
func TestEngineRunBaselineMTRBelowFullConversionRate(t *testing.T) {
	result, err := testEngine().Run(context.Background(), testProfile(), testAssumptions(), testRunDate())
	require.NoError(t, err)

	full := result.Conversions[len(result.Conversions)-1]
	baselineMTR := full.PreConversionMTR

	assert.True(t, baselineMTR.GreaterThan(decimal.Zero))
	assert.True(t, baselineMTR.LessThan(full.ConversionTaxRate),
		"baseline mtr %s vs full conversion rate %s", baselineMTR, full.ConversionTaxRate)
}

func TestEngineRunValidation(t *testing.T) {
	engine := testEngine()
	ctx := context.Background()

	_, err := engine.Run(ctx, nil, testAssumptions(), testRunDate())
	require.Error(t, err)
	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	bad := testAssumptions()
	bad.DistributionStatus = "X"
	_, err = engine.Run(ctx, testProfile(), bad, testRunDate())
	assert.ErrorAs(t, err, &cfgErr)

	bad = testAssumptions()
	bad.LifeYears = 0
	_, err = engine.Run(ctx, testProfile(), bad, testRunDate())
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEngineRunMissingTaxLaw(t *testing.T) {
	repo := NewTaxLawRepository(domain.TaxLawTable{}, dec(0.015))
	engine := NewCalculationEngine(repo)

	_, err := engine.Run(context.Background(), testProfile(), testAssumptions(), testRunDate())
	require.Error(t, err)
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestEngineRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testEngine().Run(ctx, testProfile(), testAssumptions(), testRunDate())
	assert.ErrorIs(t, err, context.Canceled)
}
