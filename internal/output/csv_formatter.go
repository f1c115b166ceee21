package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// CSVFormatter exports the year-by-year projection rows for
// spreadsheet analysis. Conversion scores live in the console and JSON
// formats; the CSV carries the bulk data.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"conv_group_num", "year", "age", "ss_benefit", "trad_dist", "roth_dist",
		"trad_savings", "roth_savings", "taxable_ss", "pct_ss_taxed",
		"taxable_income", "fed_tax", "mtr", "mtr_adj", "after_tax_dist", "atcf",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, r := range result.Years {
		row := []string{
			strconv.Itoa(r.GroupNum),
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Age),
			r.SSBenefit.String(),
			r.TraditionalDistribution.String(),
			r.RothDistribution.String(),
			r.TraditionalSavings.String(),
			r.RothSavings.String(),
			r.TaxableSS.String(),
			r.PctSSTaxed.String(),
			r.TaxableIncome.String(),
			r.FederalTax.String(),
			r.MarginalRate.String(),
			r.AdjustedMarginalRate.String(),
			r.AfterTaxDistribution.String(),
			r.AfterTaxCashFlow.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
