package output

import (
	"bytes"
	"fmt"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
)

// ConsoleFormatter renders the three run tables as fixed-width text:
// year-by-year projections, cumulative conversion scores, and
// incremental conversion scores.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.RunResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "ROTH CONVERSION ANALYSIS")
	fmt.Fprintln(&buf, "========================")
	fmt.Fprintf(&buf, "Run year: %d  Start year: %d  Groups: %d\n", result.RunYear, result.StartYear, len(result.Groups))
	fmt.Fprintf(&buf, "Baseline distribution: %s  Annuity multiple: %s  Base duration: %s\n",
		FormatCurrency(result.Distribution), result.AnnuityFactorMultiple.StringFixed(4), result.BaseDuration.StringFixed(2))
	fmt.Fprintln(&buf)

	c.writeGroups(&buf, result)
	c.writeYears(&buf, result)
	c.writeConversions(&buf, "CONVERSION SCORES (vs baseline)", result.Conversions)
	c.writeConversions(&buf, "INCREMENTAL SCORES (vs prior group)", result.Incrementals)

	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeGroups(buf *bytes.Buffer, result *domain.RunResult) {
	fmt.Fprintln(buf, "CONVERSION GROUPS")
	fmt.Fprintf(buf, "%4s %-20s %14s %14s\n", "Grp", "Description", "Trad_Savg", "Roth_Savg")
	for _, g := range result.Groups {
		fmt.Fprintf(buf, "%4d %-20s %14s %14s\n",
			g.Num, g.Description, g.TraditionalSavings.StringFixed(0), g.RothSavings.StringFixed(0))
	}
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writeYears(buf *bytes.Buffer, result *domain.RunResult) {
	fmt.Fprintln(buf, "RETIREMENT YEAR DATA")
	fmt.Fprintf(buf, "%4s %12s %4s %12s %12s %10s %10s %10s %9s %12s %12s %12s %8s %8s\n",
		"Grp", "Year", "Age", "Roth_Dist", "Trad_Dist", "Roth_Savg", "Trad_Savg",
		"SS_Bene", "%SS_Tax", "Tax_Income", "Fed_Tax", "Aft_Tax_Dist", "MTR", "MTR_Adj")
	for _, r := range result.Years {
		fmt.Fprintf(buf, "%4d %12s %4d %12s %12s %10s %10s %10s %9s %12s %12s %12s %8s %8s\n",
			r.GroupNum,
			r.Date.Format("2006-01-02"),
			r.Age,
			r.RothDistribution.StringFixed(2),
			r.TraditionalDistribution.StringFixed(2),
			r.RothSavings.StringFixed(0),
			r.TraditionalSavings.StringFixed(0),
			r.SSBenefit.StringFixed(0),
			FormatPercentage(r.PctSSTaxed),
			r.TaxableIncome.StringFixed(2),
			r.FederalTax.StringFixed(2),
			r.AfterTaxDistribution.StringFixed(2),
			FormatPercentage(r.MarginalRate),
			FormatPercentage(r.AdjustedMarginalRate))
	}
	fmt.Fprintln(buf)
}

func (c ConsoleFormatter) writeConversions(buf *bytes.Buffer, title string, rows []domain.ConversionMetrics) {
	fmt.Fprintln(buf, title)
	fmt.Fprintf(buf, "%4s %7s %14s %12s %9s %9s %9s %14s %14s %12s %9s %9s %9s %14s %12s\n",
		"Grp", "Bucket", "Conv_Amt", "Conv_Tax", "Tax_Rate", "MTR_Pre", "MTR_Post",
		"Dist_Pre", "Dist_Post", "Dist_Chg", "Multiple", "IRR", "Duration", "Arb_Amt", "Dist_TaxChg")
	for _, m := range rows {
		fmt.Fprintf(buf, "%4d %7s %14s %12s %9s %9s %9s %14s %14s %12s %9s %9s %9s %14s %12s\n",
			m.GroupNum,
			FormatPercentage(m.TaxRateBucket),
			m.ConversionAmount.StringFixed(2),
			m.ConversionTax.StringFixed(2),
			FormatPercentage(m.ConversionTaxRate),
			FormatPercentage(m.PreConversionMTR),
			FormatPercentage(m.PostConversionMTR),
			m.PreDistributionsTotal.StringFixed(2),
			m.PostDistributionsTotal.StringFixed(2),
			m.AfterTaxChange.StringFixed(2),
			m.ReturnMultiple.StringFixed(4),
			m.IRR.StringFixed(4),
			m.Duration.StringFixed(2),
			m.TaxRateArbitrage.StringFixed(2),
			m.DistributionTaxChange.StringFixed(2))
	}
	fmt.Fprintln(buf)
}
