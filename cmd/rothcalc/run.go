package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcgo/roth-conversion-calculator/internal/calculation"
	"github.com/rcgo/roth-conversion-calculator/internal/config"
	"github.com/rcgo/roth-conversion-calculator/internal/output"
)

var (
	runInputFile string
	runFormat    string
	runWriteFile bool
	runUserKey   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a conversion projection from an input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		parser := config.NewInputParser()
		input, err := parser.LoadFromFile(runInputFile)
		if err != nil {
			return eris.Wrap(err, "load input")
		}

		repo := calculation.NewTaxLawRepository(input.Table(), input.Assumptions.InflationRate)
		engine := calculation.NewCalculationEngineWithLogger(repo, zapLogger{})

		result, err := engine.Run(ctx, &input.Profile, input.Assumptions, time.Now())
		if err != nil {
			return eris.Wrap(err, "run projection")
		}
		zap.L().Info("projection complete",
			zap.Int("run_year", result.RunYear),
			zap.Int("start_year", result.StartYear),
			zap.Int("groups", len(result.Groups)),
		)

		if runUserKey != "" {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			runID, err := st.SaveRun(ctx, runUserKey, result)
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("user", runUserKey), zap.Int64("run_id", runID))
		}

		formatter := output.GetFormatterByName(runFormat)
		if formatter == nil {
			return fmt.Errorf("unknown format %q, available: %s",
				runFormat, strings.Join(output.FormatterNames(), ", "))
		}

		if runWriteFile {
			filename, err := output.WriteFormatted(formatter, result, formatterExt(formatter))
			if err != nil {
				return eris.Wrap(err, "write report")
			}
			zap.L().Info("report written", zap.String("file", filename))
			return nil
		}

		data, err := formatter.Format(result)
		if err != nil {
			return eris.Wrap(err, "format result")
		}
		cmd.Print(string(data))
		return nil
	},
}

func formatterExt(f output.Formatter) string {
	switch f.Name() {
	case "json":
		return "json"
	case "csv":
		return "csv"
	default:
		return "txt"
	}
}

func init() {
	runCmd.Flags().StringVarP(&runInputFile, "input", "i", "", "input YAML file (required)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "console", "output format: console, json, csv")
	runCmd.Flags().BoolVar(&runWriteFile, "write", false, "write the report to a timestamped file instead of stdout")
	runCmd.Flags().StringVarP(&runUserKey, "user", "u", "", "persist the run to the store under this user key")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
