package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

func stdDedSingle2025(t *testing.T) domain.StandardDeduction {
	t.Helper()
	ded, err := testRepository(0).StandardDeductionFor(2025, domain.FilingSingle)
	require.NoError(t, err)
	return ded
}

func TestBuildConversionLadder(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)
	trad := dec(500000)
	roth := dec(50000)

	ladder := builder.Build(trad, roth, stdDedSingle2025(t), singleBrackets2025(t))

	// Baseline, standard deduction, five affordable bracket rungs
	// (10% through 32%), then full conversion. The 35% rung needs
	// 15750+626350 which 500k cannot cover.
	require.Len(t, ladder.Groups, 8)
	assert.True(t, ladder.HasStandardDeductionGroup)
	require.NotNil(t, ladder.BreakingBracket)
	assert.True(t, ladder.BreakingBracket.Rate.Equal(dec(0.35)))

	assert.Equal(t, "Baseline", ladder.Groups[0].Description)
	assert.Equal(t, "Standard deduction", ladder.Groups[1].Description)
	assert.Equal(t, "Full conversion", ladder.Groups[7].Description)

	// Group numbering is dense and ordered.
	for i, g := range ladder.Groups {
		assert.Equal(t, i, g.Num)
	}
}

func TestLadderPreservesCombinedBalance(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)
	trad := dec(500000)
	roth := dec(50000)
	total := trad.Add(roth)

	ladder := builder.Build(trad, roth, stdDedSingle2025(t), singleBrackets2025(t))
	for _, g := range ladder.Groups {
		combined := g.TraditionalSavings.Add(g.RothSavings)
		assert.True(t, combined.Equal(total), "group %d combined %s", g.Num, combined)
	}
}

func TestLadderConversionAmountsIncrease(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)
	trad := dec(500000)

	ladder := builder.Build(trad, decimal.Zero, stdDedSingle2025(t), singleBrackets2025(t))

	prev := decimal.NewFromInt(-1)
	for _, g := range ladder.Groups {
		amt := ladder.ConversionAmount(g.Num, trad)
		assert.True(t, amt.GreaterThan(prev), "group %d amount %s did not increase past %s", g.Num, amt, prev)
		assert.True(t, g.TraditionalSavings.GreaterThanOrEqual(decimal.Zero))
		prev = amt
	}

	// The last group converts everything.
	last := ladder.Groups[len(ladder.Groups)-1]
	assert.True(t, ladder.ConversionAmount(last.Num, trad).Equal(trad))
	assert.True(t, last.TraditionalSavings.IsZero())
}

func TestLadderBelowStandardDeduction(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)

	ladder := builder.Build(dec(10000), dec(5000), stdDedSingle2025(t), singleBrackets2025(t))

	// A balance under the deduction cannot shelter a rung; only the
	// baseline and the full conversion remain.
	require.Len(t, ladder.Groups, 2)
	assert.False(t, ladder.HasStandardDeductionGroup)
	assert.Equal(t, 0, ladder.Groups[0].Num)
	assert.Equal(t, 1, ladder.Groups[1].Num)
	assert.Equal(t, "Full conversion", ladder.Groups[1].Description)
	assert.True(t, ladder.ConversionAmount(1, dec(10000)).Equal(dec(10000)))
}

func TestLadderEveryRungAffordable(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)
	trad := dec(5000000)

	ladder := builder.Build(trad, decimal.Zero, stdDedSingle2025(t), singleBrackets2025(t))

	// 5M fills every closed bracket; the ladder breaks on the open
	// top bracket and the full-conversion label is the top rate.
	require.Len(t, ladder.Groups, 9)
	assert.True(t, ladder.FullConversionBucket().Equal(dec(0.37)))
}

func TestBracketForGroup(t *testing.T) {
	builder := NewConversionLadderBuilder(nil)
	ladder := builder.Build(dec(500000), decimal.Zero, stdDedSingle2025(t), singleBrackets2025(t))

	assert.Nil(t, ladder.BracketForGroup(0))
	assert.Nil(t, ladder.BracketForGroup(1))

	br := ladder.BracketForGroup(2)
	require.NotNil(t, br)
	assert.True(t, br.Rate.Equal(dec(0.10)))

	br = ladder.BracketForGroup(6)
	require.NotNil(t, br)
	assert.True(t, br.Rate.Equal(dec(0.32)))

	// The full-conversion group has no rung bracket.
	assert.Nil(t, ladder.BracketForGroup(7))
}
