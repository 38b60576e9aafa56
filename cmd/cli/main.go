package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"fairlens/adapters/excel"
	"fairlens/domain/fairness"
	"fairlens/domain/table"
	"fairlens/internal/analysis/profile"
	"fairlens/internal/engine"
	"fairlens/internal/privacy"
	"fairlens/internal/render"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fairlens",
		Short: "Fairlens CLI for bias and privacy audits over tabular datasets",
	}

	rootCmd.AddCommand(
		newAuditCmd(),
		newPrivacyCmd(),
		newProfileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAuditCmd() *cobra.Command {
	var (
		label      string
		positive   string
		attrs      []string
		threshold  float64
		warnBand   float64
		prediction string
		sheet      string
		asMarkdown bool
	)

	cmd := &cobra.Command{
		Use:   "audit [dataset-file]",
		Short: "Run a bias audit over a CSV or XLSX dataset",
		Long: `Run a disparate impact audit over the given dataset.

Example: fairlens audit loans.csv --label approved --positive 1 --attrs gender,race`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewDataReader(sheet).Read(args[0])
			if err != nil {
				return err
			}

			eng := engine.New(engine.Config{
				Policy:           fairnessPolicy(threshold, warnBand),
				PredictionColumn: prediction,
			})

			report, err := eng.Run(cmd.Context(), ds, table.LabelSpec{Column: label, Positive: positive}, attrs)
			if err != nil {
				return err
			}

			if asMarkdown {
				fmt.Print(render.Markdown(report))
			} else {
				fmt.Print(render.Text(report))
			}
			if report.HasViolation() {
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "approved", "Binary outcome column")
	cmd.Flags().StringVar(&positive, "positive", "1", "Value counted as a positive outcome")
	cmd.Flags().StringSliceVar(&attrs, "attrs", []string{"gender"}, "Protected attribute columns")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.8, "Disparate impact ratio threshold")
	cmd.Flags().Float64Var(&warnBand, "warn-band", 0, "Width of the warning band above the threshold")
	cmd.Flags().StringVar(&prediction, "prediction", "", "Prediction column for selection rates (defaults to label)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX files (defaults to first sheet)")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Render the report as markdown")

	return cmd
}

func newPrivacyCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "privacy [dataset-file]",
		Short: "Scan a dataset for PII patterns and quasi-identifiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewDataReader(sheet).Read(args[0])
			if err != nil {
				return err
			}

			report := privacy.NewAnalyzer().AnalyzeDataset(ds)

			fmt.Println("=== PRIVACY ANALYSIS ===")
			if len(report.Findings) == 0 {
				fmt.Println("No PII patterns detected")
			}
			for _, f := range report.Findings {
				fmt.Printf("%s: %d match(es) in column %s\n", f.Kind, f.Matches, f.Column)
			}
			if len(report.QuasiIdentifiers) > 0 {
				fmt.Printf("Quasi-identifiers: %s\n", strings.Join(report.QuasiIdentifiers, ", "))
			}
			for _, rec := range report.Recommendations {
				fmt.Printf("- %s\n", rec)
			}
			if report.HasPII() {
				os.Exit(2)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX files (defaults to first sheet)")

	return cmd
}

func newProfileCmd() *cobra.Command {
	var sheet string
	var columns []string

	cmd := &cobra.Command{
		Use:   "profile [dataset-file]",
		Short: "Print column profiles and numeric summaries as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := excel.NewDataReader(sheet).Read(args[0])
			if err != nil {
				return err
			}

			cols := columns
			if len(cols) == 0 {
				cols = ds.Columns()
				sort.Strings(cols)
			}
			prof, err := profile.NewComputer().Profile(ds, cols)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(prof)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet name for XLSX files (defaults to first sheet)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Columns to profile (defaults to all)")

	return cmd
}

func fairnessPolicy(threshold, warnBand float64) fairness.Policy {
	return fairness.Policy{Threshold: threshold, WarnBand: warnBand}
}
