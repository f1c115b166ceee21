package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// irrCap bounds reported internal rates of return. The
// standard-deduction group reports the cap itself: its conversion is
// free, so the return is unbounded.
const irrCap = 0.99999999

// groupAggregates summarizes one group's simulated years for scoring.
type groupAggregates struct {
	avgAdjMTR      decimal.Decimal
	totalAfterTax  decimal.Decimal
	totalFedTax    decimal.Decimal
	totalTradDist  decimal.Decimal
	afterTaxByYear []decimal.Decimal
}

func aggregateYears(records []domain.YearlyRecord) groupAggregates {
	var agg groupAggregates
	for _, r := range records {
		agg.avgAdjMTR = agg.avgAdjMTR.Add(r.AdjustedMarginalRate)
		agg.totalAfterTax = agg.totalAfterTax.Add(r.AfterTaxDistribution)
		agg.totalFedTax = agg.totalFedTax.Add(r.FederalTax)
		agg.totalTradDist = agg.totalTradDist.Add(r.TraditionalDistribution)
		agg.afterTaxByYear = append(agg.afterTaxByYear, r.AfterTaxDistribution)
	}
	if n := len(records); n > 0 {
		agg.avgAdjMTR = agg.avgAdjMTR.Div(decimal.NewFromInt(int64(n)))
	}
	return agg
}

// MetricsCalculator scores conversion groups against the baseline and
// against their predecessor on the ladder.
type MetricsCalculator struct {
	growthRate   decimal.Decimal
	lifeYears    int
	baseDuration decimal.Decimal
	taxCalc      *FederalTaxCalculator
}

// NewMetricsCalculator creates a metrics calculator. baseDuration is
// the run-level annuitization duration used to price synthetic Roth
// contributions.
func NewMetricsCalculator(growthRate decimal.Decimal, lifeYears int, baseDuration decimal.Decimal) *MetricsCalculator {
	return &MetricsCalculator{
		growthRate:   growthRate,
		lifeYears:    lifeYears,
		baseDuration: baseDuration,
		taxCalc:      NewFederalTaxCalculator(),
	}
}

// conversionTax prices a group's lump-sum conversion. The
// standard-deduction rung converts for free.
func (mc *MetricsCalculator) conversionTax(ladder *ConversionLadder, num int, amount decimal.Decimal) decimal.Decimal {
	if num == 0 || (num == 1 && ladder.HasStandardDeductionGroup) {
		return decimal.Zero
	}
	return mc.taxCalc.ConversionTax(ladder.Brackets, amount, ladder.StandardDeduction.Amount)
}

func (mc *MetricsCalculator) taxRateBucket(ladder *ConversionLadder, num int) decimal.Decimal {
	if num == 1 && ladder.HasStandardDeductionGroup {
		return decimal.Zero
	}
	if num == len(ladder.Groups)-1 {
		return ladder.FullConversionBucket()
	}
	if br := ladder.BracketForGroup(num); br != nil {
		return br.Rate
	}
	return decimal.Zero
}

// Cumulative scores group num against the no-conversion baseline.
// aggs is indexed by group number; every group must be simulated before
// scoring starts.
func (mc *MetricsCalculator) Cumulative(ladder *ConversionLadder, num int, initialTraditional decimal.Decimal, aggs []groupAggregates) domain.ConversionMetrics {
	base := aggs[0]
	cur := aggs[num]
	stdDedGroup := num == 1 && ladder.HasStandardDeductionGroup

	convAmt := ladder.ConversionAmount(num, initialTraditional)
	convTax := mc.conversionTax(ladder, num, convAmt)

	m := domain.ConversionMetrics{
		GroupNum:               num,
		TaxRateBucket:          mc.taxRateBucket(ladder, num),
		ConversionAmount:       convAmt,
		ConversionTax:          convTax,
		PreConversionMTR:       base.avgAdjMTR,
		PostConversionMTR:      cur.avgAdjMTR,
		PreDistributionsTotal:  base.totalAfterTax,
		PostDistributionsTotal: cur.totalAfterTax,
	}
	if !convAmt.IsZero() {
		m.ConversionTaxRate = convTax.Div(convAmt)
	}

	gain := cur.totalAfterTax.Sub(base.totalAfterTax)
	m.AfterTaxChange = gain

	if stdDedGroup {
		m.ReturnMultiple = decimal.NewFromFloat(scaleCap)
		m.IRR = decimal.NewFromFloat(irrCap)
		m.Duration = decimal.Zero
	} else {
		multiple := decimal.Zero
		if !convTax.IsZero() {
			multiple = gain.Div(convTax)
		}
		m.IRR = mc.irrAgainst(base.afterTaxByYear, cur.afterTaxByYear, convTax, false)
		m.Duration = mc.duration(m.IRR, multiple)
		m.ReturnMultiple = capDecimal(multiple)
	}

	m.SyntheticContribution = mc.syntheticContribution(convTax)
	m.TaxRateArbitrage = dropNoise(gain.Sub(m.SyntheticContribution))

	m.DistributionTaxChange = base.totalFedTax.Sub(cur.totalFedTax)
	distDelta := base.totalTradDist.Sub(cur.totalTradDist)
	if !distDelta.IsZero() {
		m.DistributionTaxRate = m.DistributionTaxChange.Div(distDelta)
	}

	return m
}

// Incremental scores group num against its predecessor on the ladder,
// isolating the marginal value of the last rung.
func (mc *MetricsCalculator) Incremental(ladder *ConversionLadder, num int, initialTraditional decimal.Decimal, aggs []groupAggregates) domain.ConversionMetrics {
	prev := aggs[num-1]
	cur := aggs[num]
	stdDedGroup := num == 1 && ladder.HasStandardDeductionGroup

	convAmt := ladder.ConversionAmount(num, initialTraditional).
		Sub(ladder.ConversionAmount(num-1, initialTraditional))
	prevTax := mc.conversionTax(ladder, num-1, ladder.ConversionAmount(num-1, initialTraditional))
	convTax := mc.conversionTax(ladder, num, ladder.ConversionAmount(num, initialTraditional)).Sub(prevTax)

	m := domain.ConversionMetrics{
		GroupNum:               num,
		TaxRateBucket:          mc.taxRateBucket(ladder, num),
		ConversionAmount:       convAmt,
		ConversionTax:          convTax,
		PreConversionMTR:       prev.avgAdjMTR,
		PostConversionMTR:      cur.avgAdjMTR,
		PreDistributionsTotal:  prev.totalAfterTax,
		PostDistributionsTotal: cur.totalAfterTax,
	}
	if !convAmt.IsZero() {
		m.ConversionTaxRate = convTax.Div(convAmt)
	}

	rawGain := cur.totalAfterTax.Sub(prev.totalAfterTax)
	gain := rawGain
	if gain.LessThan(decimal.NewFromFloat(1e-8)) {
		gain = decimal.Zero
	}
	m.AfterTaxChange = gain

	if stdDedGroup {
		m.ReturnMultiple = decimal.NewFromFloat(scaleCap)
		m.IRR = decimal.NewFromFloat(irrCap)
		m.Duration = decimal.Zero
	} else {
		multiple := decimal.Zero
		if !convTax.IsZero() {
			multiple = capDecimal(gain.Div(convTax))
		}
		m.ReturnMultiple = multiple
		m.IRR = mc.irrAgainst(prev.afterTaxByYear, cur.afterTaxByYear, convTax, true)
		m.Duration = mc.duration(m.IRR, multiple)
	}

	m.SyntheticContribution = mc.syntheticContribution(convTax)
	m.TaxRateArbitrage = dropNoise(rawGain.Sub(m.SyntheticContribution))

	m.DistributionTaxChange = prev.totalFedTax.Sub(cur.totalFedTax)
	distDelta := prev.totalTradDist.Sub(cur.totalTradDist)
	if !distDelta.IsZero() {
		m.DistributionTaxRate = m.DistributionTaxChange.Div(distDelta)
	}

	return m
}

// irrAgainst computes the internal rate of return of paying the
// conversion tax up front in exchange for the yearly after-tax
// distribution improvements. flatSentinel selects the incremental
// convention, where a flat or losing exchange reports -1 instead of 0.
func (mc *MetricsCalculator) irrAgainst(baseline, current []decimal.Decimal, convTax decimal.Decimal, flatSentinel bool) decimal.Decimal {
	if len(baseline) != mc.lifeYears || len(current) != mc.lifeYears {
		return decimal.Zero
	}

	flows := make([]float64, 0, mc.lifeYears+1)
	tax, _ := convTax.Float64()
	flows = append(flows, -tax)

	diffSum := decimal.Zero
	for i := 0; i < mc.lifeYears; i++ {
		diff := current[i].Sub(baseline[i])
		diffSum = diffSum.Add(diff)
		f, _ := diff.Float64()
		flows = append(flows, f)
	}

	flat := diffSum.LessThan(decimal.NewFromFloat(1e-8))
	if flatSentinel && flat {
		return decimal.NewFromInt(-1)
	}

	rate, ok := irr(flows)
	if !ok || math.IsNaN(rate) || math.IsInf(rate, 0) {
		if flatSentinel {
			return decimal.NewFromInt(-1)
		}
		return decimal.Zero
	}
	if rate > irrCap {
		rate = irrCap
	}
	return decimal.NewFromFloat(rate).Round(8)
}

// duration converts a return multiple and rate into the years the rate
// needs to reproduce the multiple. Degenerate combinations report zero.
func (mc *MetricsCalculator) duration(irrRate, multiple decimal.Decimal) decimal.Decimal {
	if irrRate.LessThanOrEqual(decimal.NewFromInt(-1)) || multiple.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	r, _ := irrRate.Float64()
	m, _ := multiple.Float64()
	base := 1 + r
	if base <= 0 || m <= 0 {
		return decimal.Zero
	}
	d := math.Log(m) / math.Log(base)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return decimal.Zero
	}
	return roundCapped(d)
}

// syntheticContribution is the value the conversion tax would have
// reached if invested at the portfolio return for the base duration.
func (mc *MetricsCalculator) syntheticContribution(convTax decimal.Decimal) decimal.Decimal {
	g, _ := mc.growthRate.Float64()
	d, _ := mc.baseDuration.Float64()
	return convTax.Mul(decimal.NewFromFloat(math.Pow(1+g, d)))
}

// dropNoise zeroes values inside the arbitrage noise floor.
func dropNoise(d decimal.Decimal) decimal.Decimal {
	if d.Abs().LessThan(decimal.NewFromFloat(0.0001)) {
		return decimal.Zero
	}
	return d
}

func capDecimal(d decimal.Decimal) decimal.Decimal {
	limit := decimal.NewFromFloat(scaleCap)
	if d.GreaterThan(limit) {
		return limit
	}
	return d.Round(8)
}
