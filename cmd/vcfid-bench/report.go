package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfid-bench/internal/aggregate"
	"github.com/inodb/vcfid-bench/internal/report"
	"github.com/inodb/vcfid-bench/internal/results"
)

func newReportCmd() *cobra.Command {
	var (
		printDoc bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the markdown results report",
		Long: `Collect every result record under the results directory, rank the
approaches and write a markdown report with execution time and memory
charts. When no results are found a placeholder report is written instead.`,
		Example: `  vcfid-bench report
  vcfid-bench report --results-dir results -o docs/results.md
  vcfid-bench report --print`,
		Args: usageArgs(cobra.NoArgs),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				"results.dir":      "results-dir",
				"results.file":     "results-file",
				"report.output":    "output",
				"report.baseline":  "baseline",
				"report.divergent": "divergent",
				"report.dataset":   "dataset",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(printDoc, width)
		},
	}

	cmd.Flags().String("results-dir", "results", "Directory containing <approach>/results.json")
	cmd.Flags().String("results-file", results.DefaultFileName, "Name of result record files")
	cmd.Flags().StringP("output", "o", "docs/results.md", "Report output path")
	cmd.Flags().String("baseline", aggregate.DefaultBaseline, "Baseline approach excluded from rankings")
	cmd.Flags().StringSlice("divergent", []string{aggregate.DefaultDivergent}, "Approaches excluded from the checksum check")
	cmd.Flags().String("dataset", report.DefaultDataset, "Dataset description shown in the report")
	cmd.Flags().BoolVar(&printDoc, "print", false, "Also render the report to the terminal")
	cmd.Flags().IntVar(&width, "width", 100, "Terminal width for --print")

	return cmd
}

func runReport(printDoc bool, width int) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	dir := viper.GetString("results.dir")
	recs, err := results.LoadDir(dir, viper.GetString("results.file"))
	if err != nil {
		return err
	}
	logger.Debug("loaded results", zap.String("dir", dir), zap.Int("records", len(recs)))

	cfg := aggregate.Config{
		Baseline:  viper.GetString("report.baseline"),
		Divergent: viper.GetStringSlice("report.divergent"),
	}
	names := report.DefaultNames().Merge(viper.GetStringMapString("report.names"))
	output := viper.GetString("report.output")

	var doc *report.Document
	sum, err := aggregate.Summarize(recs, cfg)
	switch {
	case errors.Is(err, aggregate.ErrNoResults):
		logger.Warn("no benchmark results found", zap.String("dir", dir))
		doc = report.Placeholder()
	case err != nil:
		return err
	default:
		doc = report.Build(sum, report.Options{
			Names:     names,
			Dataset:   viper.GetString("report.dataset"),
			Baseline:  cfg.Baseline,
			Divergent: cfg.Divergent,
		})
	}

	if err := report.WriteFile(output, doc); err != nil {
		return err
	}
	logger.Info("report written", zap.String("path", output))

	if sum != nil {
		report.WriteSummary(os.Stdout, sum.Ordered, names)
		if !sum.Consistency.AllMatch {
			logger.Warn("output checksums differ between approaches",
				zap.Int("distinct", sum.Consistency.Distinct))
		}
	}

	if printDoc {
		out, err := report.RenderTerminal(doc, width)
		if err != nil {
			return err
		}
		fmt.Print(out)
	}
	return nil
}
