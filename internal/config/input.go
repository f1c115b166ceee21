package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// Input is the parsed run request: who the user is, what to assume,
// and optionally a tax law override replacing the built-in tables.
type Input struct {
	Profile     domain.UserProfile  `yaml:"profile"`
	Assumptions domain.Assumptions  `yaml:"assumptions"`
	TaxLaw      *domain.TaxLawTable `yaml:"tax_law,omitempty"`
}

// Table returns the tax law table the run should use.
func (in *Input) Table() domain.TaxLawTable {
	if in.TaxLaw != nil {
		return *in.TaxLaw
	}
	return DefaultTaxLawTable()
}

// InputParser handles parsing of input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a run request from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*Input, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read input file %s", filename)
	}

	var input Input
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, eris.Wrap(err, "config: parse input YAML")
	}

	ip.applyDefaults(&input)
	if err := ip.ValidateInput(&input); err != nil {
		return nil, eris.Wrap(err, "config: validate input")
	}

	return &input, nil
}

// applyDefaults fills unset assumptions with the standard ones.
func (ip *InputParser) applyDefaults(input *Input) {
	defaults := domain.DefaultAssumptions()
	as := &input.Assumptions

	if as.DistributionReturn.IsZero() {
		as.DistributionReturn = defaults.DistributionReturn
	}
	if as.InflationRate.IsZero() {
		as.InflationRate = defaults.InflationRate
	}
	if as.BenefitGrowthRate.IsZero() {
		as.BenefitGrowthRate = defaults.BenefitGrowthRate
	}
	if as.LifeYears == 0 {
		as.LifeYears = defaults.LifeYears
	}
	if as.DistributionStatus == "" {
		if input.Profile.MaritalStatus != "" {
			as.DistributionStatus = input.Profile.MaritalStatus
		} else {
			as.DistributionStatus = defaults.DistributionStatus
		}
	}
}

// ValidateInput validates the loaded run request.
func (ip *InputParser) ValidateInput(input *Input) error {
	if input.Profile.BirthDate.IsZero() {
		return fmt.Errorf("birth date is required")
	}
	if input.Profile.BirthDate.After(time.Now()) {
		return fmt.Errorf("birth date is in the future")
	}
	if input.Profile.TraditionalSavings.IsNegative() {
		return fmt.Errorf("traditional savings cannot be negative")
	}
	if input.Profile.RothSavings.IsNegative() {
		return fmt.Errorf("roth savings cannot be negative")
	}

	as := input.Assumptions
	if !as.DistributionStatus.Valid() {
		return fmt.Errorf("invalid filing status %q (want S, M, or H)", as.DistributionStatus)
	}
	if as.LifeYears <= 0 || as.LifeYears > 70 {
		return fmt.Errorf("life years must be between 1 and 70, got %d", as.LifeYears)
	}
	if as.DistributionReturn.LessThan(decimal.NewFromInt(-1)) {
		return fmt.Errorf("distribution return below -100%%")
	}
	if as.InflationRate.IsNegative() {
		return fmt.Errorf("inflation rate cannot be negative")
	}
	if as.InitialBenefit.IsNegative() {
		return fmt.Errorf("social security benefit cannot be negative")
	}

	if input.TaxLaw != nil {
		if len(input.TaxLaw.Brackets) == 0 {
			return fmt.Errorf("tax law override has no brackets")
		}
		if len(input.TaxLaw.StandardDeductions) == 0 {
			return fmt.Errorf("tax law override has no standard deductions")
		}
	}

	return nil
}

// ExampleInput returns a ready-to-edit input file.
func ExampleInput() string {
	return `# Roth conversion analysis input
profile:
  birth_date: 1964-03-15T00:00:00Z
  marital_status: S        # S, M, or H
  traditional_savings: 500000
  roth_savings: 0

assumptions:
  dist_return: 0.05        # annual return during distribution
  inflation: 0.015         # used to extrapolate tax tables
  ss_growth: 0.015         # social security COLA
  ss_benefit: 24000        # annual benefit at retirement
  life_years: 30           # distribution horizon
  distribution_status: S   # filing status in retirement

# Optional: override the built-in tax tables with a tax_law block.
`
}
