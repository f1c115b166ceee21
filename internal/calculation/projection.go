package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
	"github.com/rcgo/roth-conversion-calculator/pkg/dateutil"
)

// YearlyProjectionSimulator walks a conversion group through every
// retirement year, producing a record per year with balances,
// distributions and the full tax treatment. Each record also carries
// the no-conversion baseline values for the same year, priced in the
// same bracket walk.
type YearlyProjectionSimulator struct {
	repo    *TaxLawRepository
	taxCalc *FederalTaxCalculator
	ssCalc  *SSTaxCalculator
}

// NewYearlyProjectionSimulator creates a simulator over the given
// repository.
func NewYearlyProjectionSimulator(repo *TaxLawRepository) *YearlyProjectionSimulator {
	return &YearlyProjectionSimulator{
		repo:    repo,
		taxCalc: NewFederalTaxCalculator(),
		ssCalc:  NewSSTaxCalculator(),
	}
}

// simulationInput carries the run-constant parameters of a projection.
type simulationInput struct {
	assumptions          domain.Assumptions
	startYear            int
	retirementAge        int
	annuityFactor        decimal.Decimal
	baselineDistribution decimal.Decimal
}

// Simulate produces the year-by-year records for one conversion group.
func (s *YearlyProjectionSimulator) Simulate(group domain.ConversionGroup, in simulationInput) ([]domain.YearlyRecord, error) {
	as := in.assumptions
	status := as.DistributionStatus
	one := decimal.NewFromInt(1)

	tradDist := ConstantDistribution(group.TraditionalSavings, in.annuityFactor)
	rothDist := ConstantDistribution(group.RothSavings, in.annuityFactor)

	records := make([]domain.YearlyRecord, 0, as.LifeYears)
	for k := 0; k < as.LifeYears; k++ {
		year := in.startYear + k
		rec := domain.YearlyRecord{
			GroupNum: group.Num,
			Date:     dateutil.YearEnd(year),
			Age:      in.retirementAge + k,
		}

		growth := one.Add(as.BenefitGrowthRate).Pow(decimal.NewFromInt(int64(k)))
		rec.SSBenefit = as.InitialBenefit.Mul(growth)
		rec.TraditionalDistribution = tradDist
		rec.RothDistribution = rothDist
		rec.TraditionalSavings = ProjectBalance(group.TraditionalSavings, as.DistributionReturn, tradDist, k)
		rec.RothSavings = ProjectBalance(group.RothSavings, as.DistributionReturn, rothDist, k)

		provBrackets, err := s.repo.ProvisionalBracketsFor(year, status)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		pi := s.ssCalc.ProvisionalIncome(rec.SSBenefit, tradDist)
		basePI := s.ssCalc.ProvisionalIncome(rec.SSBenefit, in.baselineDistribution)
		tier := FindProvisionalBracket(provBrackets, pi)
		baseTier := FindProvisionalBracket(provBrackets, basePI)

		var ssMult, baseSSMult decimal.Decimal
		rec.TaxableSS, ssMult = s.ssCalc.TaxableBenefit(rec.SSBenefit, pi, tier, status)
		rec.BaselineTaxableSS, baseSSMult = s.ssCalc.TaxableBenefit(rec.SSBenefit, basePI, baseTier, status)
		if rec.SSBenefit.IsPositive() {
			rec.PctSSTaxed = rec.TaxableSS.Div(rec.SSBenefit)
		}

		stdDed, err := s.repo.StandardDeductionFor(year, status)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		deduction := stdDed.Amount
		if rec.Age >= 65 {
			deduction = deduction.Add(stdDed.Age65Addition)
		}
		rec.TaxableIncome = clampZero(tradDist.Add(rec.TaxableSS).Sub(deduction))
		rec.BaselineTaxableIncome = clampZero(in.baselineDistribution.Add(rec.BaselineTaxableSS).Sub(deduction))

		brackets, err := s.repo.BracketsFor(year, status)
		if err != nil {
			return nil, fmt.Errorf("year %d: %w", year, err)
		}
		rec.FederalTax, rec.BaselineFederalTax = s.taxCalc.FederalTaxPair(brackets, rec.TaxableIncome, rec.BaselineTaxableIncome)

		rec.MarginalRate = s.taxCalc.MarginalRate(brackets, rec.TaxableIncome)
		rec.AdjustedMarginalRate = rec.MarginalRate.Mul(ssMult)
		rec.BaselineMarginalRate = s.taxCalc.MarginalRate(brackets, rec.BaselineTaxableIncome)
		rec.BaselineAdjMarginalRate = rec.BaselineMarginalRate.Mul(baseSSMult)

		rec.AfterTaxDistribution = tradDist.Add(rothDist).Sub(rec.FederalTax)
		rec.AfterTaxCashFlow = rec.AfterTaxDistribution.Add(rec.SSBenefit)
		if tradDist.IsPositive() {
			rec.DistributionTaxRate = rec.FederalTax.Div(tradDist)
		}

		records = append(records, rec)
	}

	return records, nil
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
