package calculation

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// RetirementAge is the age distributions begin. Conversions are modeled
// at the run year, distributions from the retirement year on.
const RetirementAge = 62

// ConfigurationError reports unusable run inputs: a missing profile,
// invalid assumptions, or tax law tables with no applicable rows.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

// CalculationEngine runs the full conversion analysis: it builds the
// conversion ladder, simulates every group year by year, and scores
// each group cumulatively and incrementally.
type CalculationEngine struct {
	repo   *TaxLawRepository
	logger Logger
}

// NewCalculationEngine creates an engine over the given tax law
// repository.
func NewCalculationEngine(repo *TaxLawRepository) *CalculationEngine {
	return &CalculationEngine{repo: repo, logger: NopLogger{}}
}

// NewCalculationEngineWithLogger creates an engine that logs progress.
func NewCalculationEngineWithLogger(repo *TaxLawRepository, logger Logger) *CalculationEngine {
	if logger == nil {
		logger = NopLogger{}
	}
	return &CalculationEngine{repo: repo, logger: logger}
}

// Run produces the complete projection for one user as of runDate.
func (ce *CalculationEngine) Run(ctx context.Context, profile *domain.UserProfile, as domain.Assumptions, runDate time.Time) (*domain.RunResult, error) {
	if profile == nil {
		return nil, configErrorf("no user profile provided")
	}
	if !as.DistributionStatus.Valid() {
		return nil, configErrorf("invalid filing status %q", as.DistributionStatus)
	}
	if as.LifeYears <= 0 {
		return nil, configErrorf("life years must be positive, got %d", as.LifeYears)
	}

	runYear := runDate.Year()
	currentAge := profile.Age(runDate)

	startYear := runYear + (RetirementAge - currentAge)
	if startYear <= runYear {
		startYear = runYear + 1
	}

	// Balances are stated as of the profile date; roll them forward
	// to the end of the run year before laddering.
	one := decimal.NewFromInt(1)
	initialTrad := profile.TraditionalSavings
	initialRoth := profile.RothSavings
	if gap := runYear - profile.BirthDate.Year() - currentAge; gap > 0 {
		growth := one.Add(as.DistributionReturn).Pow(decimal.NewFromInt(int64(gap)))
		initialTrad = initialTrad.Mul(growth)
		initialRoth = initialRoth.Mul(growth)
	}

	status := as.DistributionStatus
	stdDed, err := ce.repo.StandardDeductionFor(runYear, status)
	if err != nil {
		return nil, fmt.Errorf("run year %d: %w", runYear, err)
	}
	brackets, err := ce.repo.BracketsFor(runYear, status)
	if err != nil {
		return nil, fmt.Errorf("run year %d: %w", runYear, err)
	}

	ladder := NewConversionLadderBuilder(ce.logger).Build(initialTrad, initialRoth, stdDed, brackets)

	af := AnnuityFactor(as.DistributionReturn, as.LifeYears)
	baseDuration := BaseDuration(as.DistributionReturn, as.LifeYears)
	baselineDist := ConstantDistribution(initialTrad, af)

	ce.logger.Infof("running conversion analysis: run year %d, start year %d, %d groups, %d years each",
		runYear, startYear, len(ladder.Groups), as.LifeYears)

	sim := NewYearlyProjectionSimulator(ce.repo)
	in := simulationInput{
		assumptions:          as,
		startYear:            startYear,
		retirementAge:        RetirementAge,
		annuityFactor:        af,
		baselineDistribution: baselineDist,
	}

	result := &domain.RunResult{
		RunYear:               runYear,
		StartYear:             startYear,
		Groups:                ladder.Groups,
		Distribution:          baselineDist,
		AnnuityFactorMultiple: af.Mul(decimal.NewFromInt(int64(as.LifeYears))),
		BaseDuration:          baseDuration,
	}

	aggs := make([]groupAggregates, len(ladder.Groups))
	for _, group := range ladder.Groups {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		records, err := sim.Simulate(group, in)
		if err != nil {
			return nil, fmt.Errorf("group %d (%s): %w", group.Num, group.Description, err)
		}
		result.Years = append(result.Years, records...)
		aggs[group.Num] = aggregateYears(records)
		ce.logger.Debugf("simulated group %d (%s): %d years", group.Num, group.Description, len(records))
	}

	metrics := NewMetricsCalculator(as.DistributionReturn, as.LifeYears, baseDuration)
	for _, group := range ladder.Groups {
		if group.Num == 0 {
			continue
		}
		result.Conversions = append(result.Conversions, metrics.Cumulative(ladder, group.Num, initialTrad, aggs))
		result.Incrementals = append(result.Incrementals, metrics.Incremental(ladder, group.Num, initialTrad, aggs))
	}

	ce.logger.Infof("analysis complete: %d year records, %d conversion rows, %d incremental rows",
		len(result.Years), len(result.Conversions), len(result.Incrementals))

	return result, nil
}
