package domain

import (
	"github.com/shopspring/decimal"
)

// TaxBracket is one row of the progressive federal bracket ladder for a
// (year, filing status). A nil IncomeMax marks the open-ended top bracket.
type TaxBracket struct {
	Year         int              `json:"year" yaml:"year"`
	FilingStatus FilingStatus     `json:"filing_status" yaml:"filing_status"`
	Rate         decimal.Decimal  `json:"tax_rate" yaml:"tax_rate"`
	IncomeMin    decimal.Decimal  `json:"income_min" yaml:"income_min"`
	IncomeMax    *decimal.Decimal `json:"income_max" yaml:"income_max"`
}

// StandardDeduction is the base deduction plus the age-65 addition for a
// (year, filing status).
type StandardDeduction struct {
	Year          int             `json:"year" yaml:"year"`
	FilingStatus  FilingStatus    `json:"filing_status" yaml:"filing_status"`
	Amount        decimal.Decimal `json:"std_ded" yaml:"std_ded"`
	Age65Addition decimal.Decimal `json:"std_ded_65_add" yaml:"std_ded_65_add"`
}

// SSProvisionalBracket is one provisional-income tier for Social Security
// taxability. PctTaxed is 0, 0.50, or 0.85; a nil IncomeMax marks the
// unbounded 85% tier.
type SSProvisionalBracket struct {
	Year         int              `json:"year" yaml:"year"`
	FilingStatus FilingStatus     `json:"filing_status" yaml:"filing_status"`
	PctTaxed     decimal.Decimal  `json:"ss_pct_taxed" yaml:"ss_pct_taxed"`
	IncomeMin    decimal.Decimal  `json:"prov_income_min" yaml:"prov_income_min"`
	IncomeMax    *decimal.Decimal `json:"prov_income_max" yaml:"prov_income_max"`
}

// Contains reports whether the provisional income falls in this tier.
// Ranges are inclusive of the upper bound; a nil upper bound is unbounded.
func (b *SSProvisionalBracket) Contains(provisionalIncome decimal.Decimal) bool {
	if provisionalIncome.LessThan(b.IncomeMin) {
		return false
	}
	return b.IncomeMax == nil || provisionalIncome.LessThanOrEqual(*b.IncomeMax)
}

// TaxLawTable bundles the reference rows the engine needs for a run. The
// table is append-only seed data; the engine never mutates it.
type TaxLawTable struct {
	Brackets            []TaxBracket           `json:"tax_brackets" yaml:"tax_brackets"`
	StandardDeductions  []StandardDeduction    `json:"standard_deductions" yaml:"standard_deductions"`
	ProvisionalBrackets []SSProvisionalBracket `json:"ss_provisional_brackets" yaml:"ss_provisional_brackets"`
}

// DecimalPtr is a convenience for building bracket literals with a bounded
// ceiling.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
