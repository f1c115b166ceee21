package main

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/rcgo/roth-conversion-calculator/internal/domain"
	"github.com/rcgo/roth-conversion-calculator/internal/output"
)

var (
	showUserKey string
	showFormat  string
	showGroup   int
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a stored run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		summary, err := st.LookupRun(ctx, showUserKey)
		if err != nil {
			return eris.Wrapf(err, "no stored run for %s", showUserKey)
		}

		result := &domain.RunResult{
			RunYear:   summary.RunYear,
			StartYear: summary.StartYear,
		}
		result.Conversions, err = st.LoadConversions(ctx, summary.RunID, false)
		if err != nil {
			return err
		}
		result.Incrementals, err = st.LoadConversions(ctx, summary.RunID, true)
		if err != nil {
			return err
		}
		if showGroup >= 0 {
			result.Years, err = st.LoadYears(ctx, summary.RunID, showGroup)
			if err != nil {
				return err
			}
		}

		formatter := output.GetFormatterByName(showFormat)
		if formatter == nil {
			return fmt.Errorf("unknown format %q, available: %s",
				showFormat, strings.Join(output.FormatterNames(), ", "))
		}
		data, err := formatter.Format(result)
		if err != nil {
			return eris.Wrap(err, "format result")
		}
		cmd.Print(string(data))
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showUserKey, "user", "u", "", "user key of the stored run (required)")
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "console", "output format: console, json, csv")
	showCmd.Flags().IntVarP(&showGroup, "group", "g", -1, "also include year rows for this conversion group")
	_ = showCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(showCmd)
}
