package calculation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// Tax law row kinds, used for cache keys and error reporting.
const (
	kindBracket       = "federal tax bracket"
	kindStdDeduction  = "standard deduction"
	kindSSProvisional = "social security provisional bracket"
)

// NotFoundError reports that no tax law rows exist at or before the
// requested year for a filing status. The tables ship with a couple of
// tabulated years, so this normally means a bad filing status or an
// empty override table.
type NotFoundError struct {
	Kind         string
	Year         int
	FilingStatus domain.FilingStatus
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s rows for filing status %q at or before year %d", e.Kind, e.FilingStatus, e.Year)
}

type taxLawKey struct {
	kind   string
	year   int
	status domain.FilingStatus
}

// TaxLawRepository resolves tax law rows for a projection year.
// Years past the latest tabulated year are extrapolated by compounding
// the inflation assumption onto every monetary field; rates are never
// scaled. Resolved years are cached for the life of the run.
type TaxLawRepository struct {
	table     domain.TaxLawTable
	inflation decimal.Decimal

	brackets    map[taxLawKey][]domain.TaxBracket
	deductions  map[taxLawKey]domain.StandardDeduction
	provisional map[taxLawKey][]domain.SSProvisionalBracket
}

// NewTaxLawRepository creates a repository over the given table.
// inflation is the annual rate used to extrapolate untabulated years.
func NewTaxLawRepository(table domain.TaxLawTable, inflation decimal.Decimal) *TaxLawRepository {
	return &TaxLawRepository{
		table:       table,
		inflation:   inflation,
		brackets:    make(map[taxLawKey][]domain.TaxBracket),
		deductions:  make(map[taxLawKey]domain.StandardDeduction),
		provisional: make(map[taxLawKey][]domain.SSProvisionalBracket),
	}
}

// inflationFactor returns (1+inflation)^gap for extrapolating monetary
// fields from the latest tabulated year to the requested year.
func (r *TaxLawRepository) inflationFactor(gap int) decimal.Decimal {
	if gap <= 0 {
		return decimal.NewFromInt(1)
	}
	one := decimal.NewFromInt(1)
	return one.Add(r.inflation).Pow(decimal.NewFromInt(int64(gap)))
}

// BracketsFor returns the federal tax brackets for a year and filing
// status, ordered by ascending rate.
func (r *TaxLawRepository) BracketsFor(year int, status domain.FilingStatus) ([]domain.TaxBracket, error) {
	key := taxLawKey{kindBracket, year, status}
	if rows, ok := r.brackets[key]; ok {
		return rows, nil
	}

	latest := -1
	for _, b := range r.table.Brackets {
		if b.FilingStatus == status && b.Year <= year && b.Year > latest {
			latest = b.Year
		}
	}
	if latest < 0 {
		return nil, &NotFoundError{Kind: kindBracket, Year: year, FilingStatus: status}
	}

	factor := r.inflationFactor(year - latest)
	var rows []domain.TaxBracket
	for _, b := range r.table.Brackets {
		if b.FilingStatus != status || b.Year != latest {
			continue
		}
		row := domain.TaxBracket{
			Year:         year,
			FilingStatus: status,
			Rate:         b.Rate,
			IncomeMin:    b.IncomeMin.Mul(factor),
		}
		if b.IncomeMax != nil {
			row.IncomeMax = domain.DecimalPtr(b.IncomeMax.Mul(factor))
		}
		rows = append(rows, row)
	}
	sortBracketsByRate(rows)

	r.brackets[key] = rows
	return rows, nil
}

// StandardDeductionFor returns the standard deduction for a year and
// filing status.
func (r *TaxLawRepository) StandardDeductionFor(year int, status domain.FilingStatus) (domain.StandardDeduction, error) {
	key := taxLawKey{kindStdDeduction, year, status}
	if row, ok := r.deductions[key]; ok {
		return row, nil
	}

	latest := -1
	var found domain.StandardDeduction
	for _, d := range r.table.StandardDeductions {
		if d.FilingStatus == status && d.Year <= year && d.Year > latest {
			latest = d.Year
			found = d
		}
	}
	if latest < 0 {
		return domain.StandardDeduction{}, &NotFoundError{Kind: kindStdDeduction, Year: year, FilingStatus: status}
	}

	factor := r.inflationFactor(year - latest)
	row := domain.StandardDeduction{
		Year:          year,
		FilingStatus:  status,
		Amount:        found.Amount.Mul(factor),
		Age65Addition: found.Age65Addition.Mul(factor),
	}

	r.deductions[key] = row
	return row, nil
}

// ProvisionalBracketsFor returns the social security provisional income
// tiers for a year and filing status, ordered by ascending floor.
func (r *TaxLawRepository) ProvisionalBracketsFor(year int, status domain.FilingStatus) ([]domain.SSProvisionalBracket, error) {
	key := taxLawKey{kindSSProvisional, year, status}
	if rows, ok := r.provisional[key]; ok {
		return rows, nil
	}

	latest := -1
	for _, b := range r.table.ProvisionalBrackets {
		if b.FilingStatus == status && b.Year <= year && b.Year > latest {
			latest = b.Year
		}
	}
	if latest < 0 {
		return nil, &NotFoundError{Kind: kindSSProvisional, Year: year, FilingStatus: status}
	}

	factor := r.inflationFactor(year - latest)
	var rows []domain.SSProvisionalBracket
	for _, b := range r.table.ProvisionalBrackets {
		if b.FilingStatus != status || b.Year != latest {
			continue
		}
		row := domain.SSProvisionalBracket{
			Year:         year,
			FilingStatus: status,
			PctTaxed:     b.PctTaxed,
			IncomeMin:    b.IncomeMin.Mul(factor),
		}
		if b.IncomeMax != nil {
			row.IncomeMax = domain.DecimalPtr(b.IncomeMax.Mul(factor))
		}
		rows = append(rows, row)
	}
	sortProvisionalByFloor(rows)

	r.provisional[key] = rows
	return rows, nil
}

func sortBracketsByRate(rows []domain.TaxBracket) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rate.LessThan(rows[j].Rate)
	})
}

func sortProvisionalByFloor(rows []domain.SSProvisionalBracket) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].IncomeMin.LessThan(rows[j].IncomeMin)
	})
}
