package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vcfid-bench/internal/bench"
	"github.com/inodb/vcfid-bench/internal/report"
	"github.com/inodb/vcfid-bench/internal/results"
)

// defaultApproaches is used when bench.approaches is not configured.
func defaultApproaches() []bench.Approach {
	return []bench.Approach{
		{Name: "baseline_cat", Command: []string{"cat", bench.InputPlaceholder}},
		{Name: "go_split", Strategy: "split"},
		{Name: "go_fields", Strategy: "fields"},
		{Name: "go_table", Strategy: "table"},
	}
}

func newBenchCmd() *cobra.Command {
	var only []string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the benchmark approaches and record their results",
		Long: `Run each configured approach once, one at a time, against the input VCF.
Wall time, peak memory and the MD5 of each approach's output are written to
<results-dir>/<approach>/results.json.

Approaches are read from bench.approaches in the config file. Each has a
name and either a built-in strategy or a command, where {input} and
{output} are replaced by the file paths. A command without {output} has
its stdout written to the output file.`,
		Example: `  vcfid-bench bench --input data/sample.vcf
  vcfid-bench bench --input data/sample.vcf --only go_split,baseline_cat`,
		Args: usageArgs(cobra.NoArgs),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				"bench.input":      "input",
				"results.dir":      "results-dir",
				"bench.output_dir": "output-dir",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context(), only)
		},
	}

	cmd.Flags().String("input", "", "Input VCF file (required)")
	cmd.Flags().String("results-dir", "results", "Directory for result records")
	cmd.Flags().String("output-dir", "output", "Directory for approach outputs")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only the named approaches")

	return cmd
}

func loadApproaches(only []string) ([]bench.Approach, error) {
	var approaches []bench.Approach
	if viper.IsSet("bench.approaches") {
		if err := viper.UnmarshalKey("bench.approaches", &approaches); err != nil {
			return nil, fmt.Errorf("parsing bench.approaches: %w", err)
		}
	}
	if len(approaches) == 0 {
		approaches = defaultApproaches()
	}
	if len(only) == 0 {
		return approaches, nil
	}

	byName := make(map[string]bench.Approach, len(approaches))
	for _, a := range approaches {
		byName[a.Name] = a
	}
	selected := make([]bench.Approach, 0, len(only))
	for _, name := range only {
		a, ok := byName[name]
		if !ok {
			return nil, &usageError{fmt.Errorf("unknown approach %q", name)}
		}
		selected = append(selected, a)
	}
	return selected, nil
}

func runBench(ctx context.Context, only []string) error {
	input := viper.GetString("bench.input")
	if input == "" {
		return &usageError{fmt.Errorf("--input is required")}
	}

	approaches, err := loadApproaches(only)
	if err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating executable: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &bench.Runner{
		Input:      input,
		ResultsDir: viper.GetString("results.dir"),
		OutputDir:  viper.GetString("bench.output_dir"),
		Executable: exe,
		Logger:     logger,
	}
	recs, err := r.Run(ctx, approaches)
	if err != nil {
		return err
	}

	results.Sort(recs)
	names := report.DefaultNames().Merge(viper.GetStringMapString("report.names"))
	report.WriteSummary(os.Stdout, recs, names)
	return nil
}
