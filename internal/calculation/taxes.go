package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// FederalTaxCalculator computes federal income tax by walking a set of
// brackets ordered by ascending rate. Brackets come from the
// TaxLawRepository, so year selection and inflation extrapolation have
// already happened by the time they arrive here.
type FederalTaxCalculator struct{}

// NewFederalTaxCalculator creates a new federal tax calculator.
func NewFederalTaxCalculator() *FederalTaxCalculator {
	return &FederalTaxCalculator{}
}

// FederalTax computes the tax owed on a single taxable income.
func (ftc *FederalTaxCalculator) FederalTax(brackets []domain.TaxBracket, taxable decimal.Decimal) decimal.Decimal {
	tax, _ := ftc.FederalTaxPair(brackets, taxable, taxable)
	return tax
}

// FederalTaxPair computes the tax owed on two taxable incomes in a
// single pass over the brackets. The simulator uses this to price a
// conversion year and its no-conversion baseline together.
func (ftc *FederalTaxCalculator) FederalTaxPair(brackets []domain.TaxBracket, a, b decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	taxA := decimal.Zero
	taxB := decimal.Zero
	doneA := false
	doneB := false
	prevMax := decimal.Zero

	for _, br := range brackets {
		open := br.IncomeMax == nil
		if !doneA {
			if open || a.LessThanOrEqual(*br.IncomeMax) {
				taxA = taxA.Add(a.Sub(prevMax).Mul(br.Rate))
				doneA = true
			} else {
				taxA = taxA.Add(br.IncomeMax.Sub(prevMax).Mul(br.Rate))
			}
		}
		if !doneB {
			if open || b.LessThanOrEqual(*br.IncomeMax) {
				taxB = taxB.Add(b.Sub(prevMax).Mul(br.Rate))
				doneB = true
			} else {
				taxB = taxB.Add(br.IncomeMax.Sub(prevMax).Mul(br.Rate))
			}
		}
		if doneA && doneB {
			break
		}
		prevMax = *br.IncomeMax
	}

	return taxA, taxB
}

// MarginalRate returns the rate of the bracket that would absorb the
// next dollar of income. Income at or below zero has a zero marginal
// rate.
func (ftc *FederalTaxCalculator) MarginalRate(brackets []domain.TaxBracket, taxable decimal.Decimal) decimal.Decimal {
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	next := taxable.Add(decimal.NewFromInt(1))
	for _, br := range brackets {
		if br.IncomeMax == nil || next.LessThanOrEqual(*br.IncomeMax) {
			return br.Rate
		}
	}
	return decimal.Zero
}

// ConversionTax prices a lump-sum conversion as ordinary income
// sheltered only by the standard deduction.
func (ftc *FederalTaxCalculator) ConversionTax(brackets []domain.TaxBracket, amount, standardDeduction decimal.Decimal) decimal.Decimal {
	taxable := amount.Sub(standardDeduction)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return ftc.FederalTax(brackets, taxable)
}
