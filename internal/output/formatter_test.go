package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
	"github.com/rcgo/roth-conversion-calculator/pkg/dateutil"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func testResult() *domain.RunResult {
	return &domain.RunResult{
		RunYear:   2025,
		StartYear: 2026,
		Groups: []domain.ConversionGroup{
			{Num: 0, TraditionalSavings: dec(500000), Description: "Baseline"},
			{Num: 1, TraditionalSavings: dec(484250), RothSavings: dec(15750), Description: "Standard deduction"},
		},
		Years: []domain.YearlyRecord{
			{
				GroupNum:                0,
				Date:                    dateutil.YearEnd(2026),
				Age:                     62,
				SSBenefit:               dec(24000),
				TraditionalDistribution: dec(32525.72),
				TraditionalSavings:      dec(492474),
				TaxableSS:               dec(13446.06),
				PctSSTaxed:              dec(0.5602),
				TaxableIncome:           dec(30221.78),
				FederalTax:              dec(3388.11),
				MarginalRate:            dec(0.12),
				AdjustedMarginalRate:    dec(0.222),
				AfterTaxDistribution:    dec(29137.61),
				AfterTaxCashFlow:        dec(53137.61),
			},
		},
		Conversions: []domain.ConversionMetrics{
			{
				GroupNum:         1,
				ConversionAmount: dec(15750),
				ReturnMultiple:   dec(99.99999999),
				IRR:              dec(0.99999999),
			},
		},
		Incrementals: []domain.ConversionMetrics{
			{
				GroupNum:         1,
				ConversionAmount: dec(15750),
				ReturnMultiple:   dec(99.99999999),
				IRR:              dec(0.99999999),
			},
		},
		Distribution:          dec(32525.72),
		AnnuityFactorMultiple: dec(1.9515),
		BaseDuration:          dec(13.71),
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.NotNil(t, GetFormatterByName("console"))
	assert.NotNil(t, GetFormatterByName("json"))
	assert.NotNil(t, GetFormatterByName("CSV"))
	assert.NotNil(t, GetFormatterByName(" json "))
	assert.Nil(t, GetFormatterByName("html"))
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(testResult())
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "ROTH CONVERSION ANALYSIS")
	assert.Contains(t, out, "Standard deduction")
	assert.Contains(t, out, "RETIREMENT YEAR DATA")
	assert.Contains(t, out, "CONVERSION SCORES (vs baseline)")
	assert.Contains(t, out, "INCREMENTAL SCORES (vs prior group)")
	assert.Contains(t, out, "2026-12-31")
	assert.Contains(t, out, "22.20%")
}

func TestJSONFormatter(t *testing.T) {
	data, err := JSONFormatter{}.Format(testResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 2025, decoded["run_year"])
	assert.NotEmpty(t, decoded["conversions"])
}

func TestCSVFormatter(t *testing.T) {
	data, err := CSVFormatter{}.Format(testResult())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2) // header + one year row

	assert.Equal(t, "conv_group_num", records[0][0])
	assert.Equal(t, "0", records[1][0])
	assert.Equal(t, "2026-12-31", records[1][1])
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1234.50", FormatCurrency(dec(1234.5)))
	assert.Equal(t, "12.00%", FormatPercentage(dec(0.12)))
}
