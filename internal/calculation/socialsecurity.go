package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// Flat additions applied inside the 85% provisional tier. These are the
// statutory tier-two bases, not inflation indexed.
var (
	ssTierBaseMarried = decimal.NewFromInt(6000)
	ssTierBaseOther   = decimal.NewFromInt(4500)
)

// SSTaxCalculator determines how much of a social security benefit is
// taxable under the provisional income rules.
type SSTaxCalculator struct{}

// NewSSTaxCalculator creates a new social security tax calculator.
func NewSSTaxCalculator() *SSTaxCalculator {
	return &SSTaxCalculator{}
}

// ProvisionalIncome is half the benefit plus all other ordinary income.
func (sstc *SSTaxCalculator) ProvisionalIncome(benefit, otherIncome decimal.Decimal) decimal.Decimal {
	return benefit.Div(decimal.NewFromInt(2)).Add(otherIncome)
}

// FindProvisionalBracket returns the tier containing the provisional
// income, or nil when no tier matches.
func FindProvisionalBracket(brackets []domain.SSProvisionalBracket, provisionalIncome decimal.Decimal) *domain.SSProvisionalBracket {
	for i := range brackets {
		if brackets[i].Contains(provisionalIncome) {
			return &brackets[i]
		}
	}
	return nil
}

// TaxableBenefit returns the taxable portion of the benefit and the
// multiplier applied to the marginal rate to reflect benefit phase-in.
//
// The taxable portion is capped at 85% of the benefit; once the cap
// binds, additional income no longer drags benefit into taxation and
// the multiplier collapses back to one.
func (sstc *SSTaxCalculator) TaxableBenefit(benefit, provisionalIncome decimal.Decimal, tier *domain.SSProvisionalBracket, status domain.FilingStatus) (decimal.Decimal, decimal.Decimal) {
	one := decimal.NewFromInt(1)
	if tier == nil {
		return decimal.Zero, one
	}

	var taxable decimal.Decimal
	switch {
	case tier.PctTaxed.IsZero():
		return decimal.Zero, one
	case tier.PctTaxed.Equal(decimal.NewFromFloat(0.5)):
		taxable = provisionalIncome.Sub(tier.IncomeMin).Mul(tier.PctTaxed)
	default:
		base := ssTierBaseOther
		if status.IsMarried() {
			base = ssTierBaseMarried
		}
		taxable = base.Add(provisionalIncome.Sub(tier.IncomeMin).Mul(tier.PctTaxed))
	}

	cap := benefit.Mul(decimal.NewFromFloat(0.85))
	if taxable.GreaterThanOrEqual(cap) {
		return cap, one
	}
	return taxable, one.Add(tier.PctTaxed)
}
