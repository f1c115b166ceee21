package config

import (
	"github.com/shopspring/decimal"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// DefaultTaxLawTable returns the built-in federal tax law rows: 2025
// and 2026 brackets and deductions per IRS Revenue Procedure 2024-40
// and the 2025 reconciliation act, plus the statutory provisional
// income tiers. Later years are extrapolated by the repository from
// the 2026 rows.
func DefaultTaxLawTable() domain.TaxLawTable {
	return domain.TaxLawTable{
		Brackets:            defaultBrackets(),
		StandardDeductions:  defaultStandardDeductions(),
		ProvisionalBrackets: defaultProvisionalBrackets(),
	}
}

func bracketRow(year int, status domain.FilingStatus, rate, min float64, max float64) domain.TaxBracket {
	row := domain.TaxBracket{
		Year:         year,
		FilingStatus: status,
		Rate:         decimal.NewFromFloat(rate),
		IncomeMin:    decimal.NewFromFloat(min),
	}
	if max > 0 {
		row.IncomeMax = domain.DecimalPtr(decimal.NewFromFloat(max))
	}
	return row
}

func defaultBrackets() []domain.TaxBracket {
	return []domain.TaxBracket{
		// 2025 single
		bracketRow(2025, domain.FilingSingle, 0.10, 0, 11925),
		bracketRow(2025, domain.FilingSingle, 0.12, 11926, 48475),
		bracketRow(2025, domain.FilingSingle, 0.22, 48476, 103350),
		bracketRow(2025, domain.FilingSingle, 0.24, 103351, 197300),
		bracketRow(2025, domain.FilingSingle, 0.32, 197301, 250525),
		bracketRow(2025, domain.FilingSingle, 0.35, 250526, 626350),
		bracketRow(2025, domain.FilingSingle, 0.37, 626351, 0),
		// 2025 married filing jointly
		bracketRow(2025, domain.FilingMarried, 0.10, 0, 23850),
		bracketRow(2025, domain.FilingMarried, 0.12, 23851, 96950),
		bracketRow(2025, domain.FilingMarried, 0.22, 96951, 206700),
		bracketRow(2025, domain.FilingMarried, 0.24, 206701, 394600),
		bracketRow(2025, domain.FilingMarried, 0.32, 394601, 501050),
		bracketRow(2025, domain.FilingMarried, 0.35, 501051, 751600),
		bracketRow(2025, domain.FilingMarried, 0.37, 751601, 0),
		// 2025 head of household
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.10, 0, 17050),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.12, 17051, 64650),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.22, 64651, 103350),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.24, 103351, 197300),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.32, 197301, 250525),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.35, 250526, 626350),
		bracketRow(2025, domain.FilingHeadOfHousehold, 0.37, 626351, 0),
		// 2026 single
		bracketRow(2026, domain.FilingSingle, 0.10, 0, 12400),
		bracketRow(2026, domain.FilingSingle, 0.12, 12401, 50400),
		bracketRow(2026, domain.FilingSingle, 0.22, 50401, 105700),
		bracketRow(2026, domain.FilingSingle, 0.24, 105701, 201775),
		bracketRow(2026, domain.FilingSingle, 0.32, 201776, 256225),
		bracketRow(2026, domain.FilingSingle, 0.35, 256226, 640600),
		bracketRow(2026, domain.FilingSingle, 0.37, 640601, 0),
		// 2026 married filing jointly
		bracketRow(2026, domain.FilingMarried, 0.10, 0, 24800),
		bracketRow(2026, domain.FilingMarried, 0.12, 24801, 100800),
		bracketRow(2026, domain.FilingMarried, 0.22, 100801, 211400),
		bracketRow(2026, domain.FilingMarried, 0.24, 211401, 403550),
		bracketRow(2026, domain.FilingMarried, 0.32, 403551, 512450),
		bracketRow(2026, domain.FilingMarried, 0.35, 512451, 768700),
		bracketRow(2026, domain.FilingMarried, 0.37, 768701, 0),
		// 2026 head of household
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.10, 0, 17700),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.12, 17701, 67450),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.22, 67451, 105700),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.24, 105701, 201750),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.32, 201751, 256200),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.35, 256201, 640600),
		bracketRow(2026, domain.FilingHeadOfHousehold, 0.37, 640601, 0),
	}
}

func deductionRow(year int, status domain.FilingStatus, amount, age65 float64) domain.StandardDeduction {
	return domain.StandardDeduction{
		Year:          year,
		FilingStatus:  status,
		Amount:        decimal.NewFromFloat(amount),
		Age65Addition: decimal.NewFromFloat(age65),
	}
}

func defaultStandardDeductions() []domain.StandardDeduction {
	return []domain.StandardDeduction{
		deductionRow(2025, domain.FilingSingle, 15750, 2000),
		deductionRow(2025, domain.FilingMarried, 31500, 1600),
		deductionRow(2025, domain.FilingHeadOfHousehold, 23625, 2000),
		deductionRow(2026, domain.FilingSingle, 16100, 2050),
		deductionRow(2026, domain.FilingMarried, 32200, 1650),
		deductionRow(2026, domain.FilingHeadOfHousehold, 24150, 2050),
	}
}

func provisionalRow(year int, status domain.FilingStatus, pct, min, max float64) domain.SSProvisionalBracket {
	row := domain.SSProvisionalBracket{
		Year:         year,
		FilingStatus: status,
		PctTaxed:     decimal.NewFromFloat(pct),
		IncomeMin:    decimal.NewFromFloat(min),
	}
	if max > 0 {
		row.IncomeMax = domain.DecimalPtr(decimal.NewFromFloat(max))
	}
	return row
}

func defaultProvisionalBrackets() []domain.SSProvisionalBracket {
	return []domain.SSProvisionalBracket{
		provisionalRow(2025, domain.FilingSingle, 0, 0, 25000),
		provisionalRow(2025, domain.FilingSingle, 0.50, 25001, 34000),
		provisionalRow(2025, domain.FilingSingle, 0.85, 34001, 0),
		provisionalRow(2025, domain.FilingMarried, 0, 0, 32000),
		provisionalRow(2025, domain.FilingMarried, 0.50, 32001, 44000),
		provisionalRow(2025, domain.FilingMarried, 0.85, 44001, 0),
		provisionalRow(2025, domain.FilingHeadOfHousehold, 0, 0, 25000),
		provisionalRow(2025, domain.FilingHeadOfHousehold, 0.50, 25001, 34000),
		provisionalRow(2025, domain.FilingHeadOfHousehold, 0.85, 34001, 0),
	}
}
