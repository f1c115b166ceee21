package calculation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func bracket(year int, status domain.FilingStatus, rate, min float64, max *float64) domain.TaxBracket {
	b := domain.TaxBracket{
		Year:         year,
		FilingStatus: status,
		Rate:         dec(rate),
		IncomeMin:    dec(min),
	}
	if max != nil {
		b.IncomeMax = domain.DecimalPtr(dec(*max))
	}
	return b
}

func ceil(v float64) *float64 { return &v }

// testTaxLawTable holds the 2025 single and married rows used across
// the package tests.
func testTaxLawTable() domain.TaxLawTable {
	return domain.TaxLawTable{
		Brackets: []domain.TaxBracket{
			bracket(2025, domain.FilingSingle, 0.10, 0, ceil(11925)),
			bracket(2025, domain.FilingSingle, 0.12, 11926, ceil(48475)),
			bracket(2025, domain.FilingSingle, 0.22, 48476, ceil(103350)),
			bracket(2025, domain.FilingSingle, 0.24, 103351, ceil(197300)),
			bracket(2025, domain.FilingSingle, 0.32, 197301, ceil(250525)),
			bracket(2025, domain.FilingSingle, 0.35, 250526, ceil(626350)),
			bracket(2025, domain.FilingSingle, 0.37, 626351, nil),
			bracket(2025, domain.FilingMarried, 0.10, 0, ceil(23850)),
			bracket(2025, domain.FilingMarried, 0.12, 23851, ceil(96950)),
			bracket(2025, domain.FilingMarried, 0.22, 96951, ceil(206700)),
			bracket(2025, domain.FilingMarried, 0.24, 206701, ceil(394600)),
			bracket(2025, domain.FilingMarried, 0.32, 394601, ceil(501050)),
			bracket(2025, domain.FilingMarried, 0.35, 501051, ceil(751600)),
			bracket(2025, domain.FilingMarried, 0.37, 751601, nil),
		},
		StandardDeductions: []domain.StandardDeduction{
			{Year: 2025, FilingStatus: domain.FilingSingle, Amount: dec(15750), Age65Addition: dec(2000)},
			{Year: 2025, FilingStatus: domain.FilingMarried, Amount: dec(31500), Age65Addition: dec(1600)},
		},
		ProvisionalBrackets: []domain.SSProvisionalBracket{
			{Year: 2025, FilingStatus: domain.FilingSingle, PctTaxed: dec(0), IncomeMin: dec(0), IncomeMax: domain.DecimalPtr(dec(25000))},
			{Year: 2025, FilingStatus: domain.FilingSingle, PctTaxed: dec(0.5), IncomeMin: dec(25001), IncomeMax: domain.DecimalPtr(dec(34000))},
			{Year: 2025, FilingStatus: domain.FilingSingle, PctTaxed: dec(0.85), IncomeMin: dec(34001)},
			{Year: 2025, FilingStatus: domain.FilingMarried, PctTaxed: dec(0), IncomeMin: dec(0), IncomeMax: domain.DecimalPtr(dec(32000))},
			{Year: 2025, FilingStatus: domain.FilingMarried, PctTaxed: dec(0.5), IncomeMin: dec(32001), IncomeMax: domain.DecimalPtr(dec(44000))},
			{Year: 2025, FilingStatus: domain.FilingMarried, PctTaxed: dec(0.85), IncomeMin: dec(44001)},
		},
	}
}

func testRepository(inflation float64) *TaxLawRepository {
	return NewTaxLawRepository(testTaxLawTable(), dec(inflation))
}

func TestBracketsForExactYear(t *testing.T) {
	repo := testRepository(0.02)

	rows, err := repo.BracketsFor(2025, domain.FilingSingle)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	// Ascending rate order with an open top bracket.
	assert.True(t, rows[0].Rate.Equal(dec(0.10)))
	assert.True(t, rows[6].Rate.Equal(dec(0.37)))
	assert.Nil(t, rows[6].IncomeMax)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].Rate.GreaterThan(rows[i-1].Rate))
	}

	// Tabulated year returns the row verbatim.
	assert.True(t, rows[0].IncomeMax.Equal(dec(11925)))
}

func TestBracketsForExtrapolatedYear(t *testing.T) {
	repo := testRepository(0.02)

	rows, err := repo.BracketsFor(2027, domain.FilingSingle)
	require.NoError(t, err)
	require.Len(t, rows, 7)

	// Two years past 2025 at 2% compounds monetary fields by 1.02^2.
	factor := dec(1.02).Mul(dec(1.02))
	assert.True(t, rows[0].IncomeMax.Equal(dec(11925).Mul(factor)),
		"got %s", rows[0].IncomeMax)
	assert.True(t, rows[1].IncomeMin.Equal(dec(11926).Mul(factor)))

	// Rates are never scaled.
	assert.True(t, rows[0].Rate.Equal(dec(0.10)))
	assert.Equal(t, 2027, rows[0].Year)
}

func TestBracketsForMissingStatus(t *testing.T) {
	repo := testRepository(0.02)

	_, err := repo.BracketsFor(2025, domain.FilingHeadOfHousehold)
	require.Error(t, err)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 2025, nf.Year)
	assert.Equal(t, domain.FilingHeadOfHousehold, nf.FilingStatus)
}

func TestBracketsForYearBeforeTable(t *testing.T) {
	repo := testRepository(0.02)

	_, err := repo.BracketsFor(2020, domain.FilingSingle)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestStandardDeductionFor(t *testing.T) {
	repo := testRepository(0.015)

	ded, err := repo.StandardDeductionFor(2025, domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, ded.Amount.Equal(dec(15750)))
	assert.True(t, ded.Age65Addition.Equal(dec(2000)))

	// Untabulated year scales both amounts.
	ded, err = repo.StandardDeductionFor(2026, domain.FilingSingle)
	require.NoError(t, err)
	assert.True(t, ded.Amount.Equal(dec(15750).Mul(dec(1.015))))
	assert.True(t, ded.Age65Addition.Equal(dec(2000).Mul(dec(1.015))))
}

func TestProvisionalBracketsFor(t *testing.T) {
	repo := testRepository(0)

	rows, err := repo.ProvisionalBracketsFor(2025, domain.FilingMarried)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.True(t, rows[0].PctTaxed.IsZero())
	assert.True(t, rows[2].PctTaxed.Equal(dec(0.85)))
	assert.Nil(t, rows[2].IncomeMax)
}

func TestRepositoryCachesResolvedYears(t *testing.T) {
	repo := testRepository(0.02)

	first, err := repo.BracketsFor(2030, domain.FilingSingle)
	require.NoError(t, err)
	second, err := repo.BracketsFor(2030, domain.FilingSingle)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].IncomeMin.Equal(second[i].IncomeMin))
	}
}
