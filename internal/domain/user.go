package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/pkg/dateutil"
)

// FilingStatus identifies the federal filing status used for tax lookups.
type FilingStatus string

const (
	FilingSingle          FilingStatus = "S"
	FilingMarried         FilingStatus = "M"
	FilingHeadOfHousehold FilingStatus = "H"
)

// Valid reports whether the filing status is one of the supported codes.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarried, FilingHeadOfHousehold:
		return true
	}
	return false
}

// IsMarried reports whether the married-filing-jointly thresholds apply.
func (fs FilingStatus) IsMarried() bool {
	return fs == FilingMarried
}

// UserProfile holds the savings position and personal details the engine
// reads. It is owned by the surrounding system and never mutated here.
type UserProfile struct {
	BirthDate          time.Time       `json:"birth_date" yaml:"birth_date"`
	MaritalStatus      FilingStatus    `json:"marital_status" yaml:"marital_status"`
	TraditionalSavings decimal.Decimal `json:"traditional_savings" yaml:"traditional_savings"`
	RothSavings        decimal.Decimal `json:"roth_savings" yaml:"roth_savings"`
}

// Age calculates the user's age at a given date.
func (up *UserProfile) Age(at time.Time) int {
	return dateutil.Age(up.BirthDate, at)
}

// Assumptions are the per-run projection inputs. They are supplied once and
// immutable for the run.
type Assumptions struct {
	// DistributionReturn is the assumed investment return during the
	// distribution phase.
	DistributionReturn decimal.Decimal `json:"dist_return" yaml:"dist_return"`
	// InflationRate adjusts tax-law thresholds beyond the latest tabulated
	// year.
	InflationRate decimal.Decimal `json:"inflation" yaml:"inflation"`
	// BenefitGrowthRate grows the Social Security benefit year over year.
	BenefitGrowthRate decimal.Decimal `json:"ss_growth" yaml:"ss_growth"`
	// InitialBenefit is the annual Social Security benefit in the first
	// distribution year.
	InitialBenefit decimal.Decimal `json:"ss_benefit" yaml:"ss_benefit"`
	// LifeYears is the length of the distribution horizon.
	LifeYears int `json:"life_years" yaml:"life_years"`
	// DistributionStatus is the filing status during distribution.
	DistributionStatus FilingStatus `json:"distribution_status" yaml:"distribution_status"`
}

// DefaultAssumptions returns the assumption set used when an input omits a
// value.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		DistributionReturn: decimal.NewFromFloat(0.05),
		InflationRate:      decimal.NewFromFloat(0.015),
		BenefitGrowthRate:  decimal.NewFromFloat(0.015),
		InitialBenefit:     decimal.NewFromInt(24000),
		LifeYears:          30,
		DistributionStatus: FilingSingle,
	}
}
