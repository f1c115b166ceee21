package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilingStatusValid(t *testing.T) {
	assert.True(t, FilingSingle.Valid())
	assert.True(t, FilingMarried.Valid())
	assert.True(t, FilingHeadOfHousehold.Valid())
	assert.False(t, FilingStatus("X").Valid())
	assert.False(t, FilingStatus("").Valid())
}

func TestFilingStatusIsMarried(t *testing.T) {
	assert.True(t, FilingMarried.IsMarried())
	assert.False(t, FilingSingle.IsMarried())
	assert.False(t, FilingHeadOfHousehold.IsMarried())
}

func TestUserProfileAge(t *testing.T) {
	profile := UserProfile{BirthDate: time.Date(1964, 3, 15, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, 60, profile.Age(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 61, profile.Age(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 61, profile.Age(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 62, profile.Age(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)))
}

func TestConversionGroupAmount(t *testing.T) {
	group := ConversionGroup{Num: 2, TraditionalSavings: decimal.NewFromInt(350000)}
	initial := decimal.NewFromInt(500000)

	assert.True(t, group.ConversionAmount(initial).Equal(decimal.NewFromInt(150000)))
}

func TestYearlyRecordGrossDistribution(t *testing.T) {
	record := YearlyRecord{
		TraditionalDistribution: decimal.NewFromInt(20000),
		RothDistribution:        decimal.NewFromInt(12000),
	}
	assert.True(t, record.GrossDistribution().Equal(decimal.NewFromInt(32000)))
}

func TestRunResultGroupYears(t *testing.T) {
	result := RunResult{
		Years: []YearlyRecord{
			{GroupNum: 0, Age: 62},
			{GroupNum: 1, Age: 62},
			{GroupNum: 0, Age: 63},
		},
	}

	baseline := result.GroupYears(0)
	assert.Len(t, baseline, 2)
	assert.Equal(t, 62, baseline[0].Age)
	assert.Equal(t, 63, baseline[1].Age)
	assert.Empty(t, result.GroupYears(5))
}

func TestSSProvisionalBracketContains(t *testing.T) {
	max := decimal.NewFromInt(34000)
	tier := SSProvisionalBracket{
		IncomeMin: decimal.NewFromInt(25000),
		IncomeMax: &max,
	}
	assert.False(t, tier.Contains(decimal.NewFromInt(24999)))
	assert.True(t, tier.Contains(decimal.NewFromInt(25000)))
	assert.True(t, tier.Contains(decimal.NewFromInt(34000)))
	assert.False(t, tier.Contains(decimal.NewFromInt(34001)))

	open := SSProvisionalBracket{IncomeMin: decimal.NewFromInt(34000)}
	assert.True(t, open.Contains(decimal.NewFromInt(1000000)))
}

func TestDefaultAssumptions(t *testing.T) {
	as := DefaultAssumptions()
	assert.Equal(t, 30, as.LifeYears)
	assert.Equal(t, FilingSingle, as.DistributionStatus)
	assert.True(t, as.DistributionReturn.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, as.InitialBenefit.Equal(decimal.NewFromInt(24000)))
}
