package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionGroup is one rung of the conversion ladder: the balances that
// remain after shifting some amount of traditional savings to Roth status.
// Group 0 is the untouched baseline; the last group is the full conversion.
type ConversionGroup struct {
	Num                int             `json:"conv_group_num"`
	TraditionalSavings decimal.Decimal `json:"trad_savings"`
	RothSavings        decimal.Decimal `json:"roth_savings"`
	Description        string          `json:"description"`
}

// ConversionAmount returns how much traditional savings this group shifts
// relative to the given initial balance.
func (cg *ConversionGroup) ConversionAmount(initialTraditional decimal.Decimal) decimal.Decimal {
	return initialTraditional.Sub(cg.TraditionalSavings)
}

// YearlyRecord is one simulated distribution year for one conversion group.
// Records are immutable once produced; the ordered per-group sequence is the
// unit the metrics calculator consumes.
type YearlyRecord struct {
	GroupNum int       `json:"conv_group_num"`
	Date     time.Time `json:"year"`
	Age      int       `json:"age"`

	SSBenefit               decimal.Decimal `json:"ss_benefit"`
	TraditionalDistribution decimal.Decimal `json:"trad_dist"`
	RothDistribution        decimal.Decimal `json:"roth_dist"`
	TraditionalSavings      decimal.Decimal `json:"trad_savings"`
	RothSavings             decimal.Decimal `json:"roth_savings"`
	TaxableSS               decimal.Decimal `json:"taxable_ss"`
	PctSSTaxed              decimal.Decimal `json:"pct_ss_taxed"`
	TaxableIncome           decimal.Decimal `json:"taxable_income"`
	FederalTax              decimal.Decimal `json:"fed_tax"`
	MarginalRate            decimal.Decimal `json:"mtr"`
	AdjustedMarginalRate    decimal.Decimal `json:"mtr_adj"`
	AfterTaxDistribution    decimal.Decimal `json:"after_tax_dist"`
	AfterTaxCashFlow        decimal.Decimal `json:"after_tax_cash_flow"`
	DistributionTaxRate     decimal.Decimal `json:"dist_tax_rate"`

	// What-if values for the baseline constant distribution, carried for
	// side-by-side comparison against the group's actual year.
	BaselineTaxableSS       decimal.Decimal `json:"baseline_taxable_ss"`
	BaselineTaxableIncome   decimal.Decimal `json:"baseline_taxable_income"`
	BaselineFederalTax      decimal.Decimal `json:"baseline_fed_tax"`
	BaselineMarginalRate    decimal.Decimal `json:"baseline_mtr"`
	BaselineAdjMarginalRate decimal.Decimal `json:"baseline_mtr_adj"`
}

// GrossDistribution is the total amount withdrawn this year across both
// account types.
func (yr *YearlyRecord) GrossDistribution() decimal.Decimal {
	return yr.TraditionalDistribution.Add(yr.RothDistribution)
}

// ConversionMetrics scores one non-baseline ladder group. The same shape is
// used for the cumulative comparison (against group 0) and the incremental
// comparison (against the previous rung).
type ConversionMetrics struct {
	GroupNum      int             `json:"conv_group_num"`
	TaxRateBucket decimal.Decimal `json:"tax_rate_bucket"`

	ConversionAmount  decimal.Decimal `json:"conv_amt"`
	ConversionTax     decimal.Decimal `json:"conv_tax"`
	ConversionTaxRate decimal.Decimal `json:"conv_tax_rate"`

	PreConversionMTR       decimal.Decimal `json:"dist_mtr_pre_conv"`
	PostConversionMTR      decimal.Decimal `json:"dist_mtr_post_conv"`
	PreDistributionsTotal  decimal.Decimal `json:"distributions_total_pre_conv"`
	PostDistributionsTotal decimal.Decimal `json:"distributions_total_post_conv"`
	AfterTaxChange         decimal.Decimal `json:"total_after_tax_dist_chg_amt"`

	ReturnMultiple decimal.Decimal `json:"conv_return_multiple"`
	IRR            decimal.Decimal `json:"conv_irr"`
	Duration       decimal.Decimal `json:"conv_duration"`

	SyntheticContribution decimal.Decimal `json:"synthetic_roth_cont"`
	TaxRateArbitrage      decimal.Decimal `json:"tax_rate_arb_amt"`

	DistributionTaxChange decimal.Decimal `json:"conv_dist_tax"`
	DistributionTaxRate   decimal.Decimal `json:"conv_dist_tax_rate"`
}

// RunResult is the complete output of one projection run: every per-year
// record for every ladder group, the cumulative and incremental metrics for
// each non-baseline group, and the run-level distribution scalars.
type RunResult struct {
	RunYear   int `json:"run_year"`
	StartYear int `json:"start_year"`

	Groups       []ConversionGroup   `json:"groups"`
	Years        []YearlyRecord      `json:"years"`
	Conversions  []ConversionMetrics `json:"conversions"`
	Incrementals []ConversionMetrics `json:"incrementals"`

	Distribution          decimal.Decimal `json:"distribution"`
	AnnuityFactorMultiple decimal.Decimal `json:"annuity_factor_multiple"`
	BaseDuration          decimal.Decimal `json:"base_duration"`
}

// GroupYears returns the ordered per-year records for one group.
func (rr *RunResult) GroupYears(groupNum int) []YearlyRecord {
	var out []YearlyRecord
	for _, yr := range rr.Years {
		if yr.GroupNum == groupNum {
			out = append(out, yr)
		}
	}
	return out
}
