// Package main provides the vcfid-bench command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const configName = ".vcfid-bench.yaml"

// usageError marks errors caused by bad command-line usage.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if isUsageError(err) {
			fmt.Fprintf(os.Stderr, "Run 'vcfid-bench --help' for usage.\n")
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func isUsageError(err error) bool {
	var ue *usageError
	if errors.As(err, &ue) {
		return true
	}
	// cobra reports unknown subcommands as plain errors
	return strings.HasPrefix(err.Error(), "unknown command")
}

// usageArgs wraps a positional argument validator so its failures exit with
// ExitUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err}
		}
		return nil
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "vcfid-bench",
		Short: "Benchmark VCF ID rewriting approaches and report the results",
		Long: `vcfid-bench rewrites the ID column of VCF files to CHROM:POS:REF:ALT,
runs competing implementations of that rewrite as a benchmark, and renders
the collected results as a markdown report.`,
		Example: `  # Rewrite IDs in a VCF file
  vcfid-bench rewrite -i input.vcf -o output.vcf

  # Benchmark the configured approaches
  vcfid-bench bench --input input.vcf

  # Generate docs/results.md from results/*/results.json
  vcfid-bench report`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err}
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./vcfid-bench.yaml or ~/"+configName+")")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newRewriteCmd())
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vcfid-bench version %s (%s) built %s\n", version, commit, date)
		},
	}
}

// bindFlags binds config keys to the named flags of cmd. Binding happens
// when the command runs so commands sharing a key do not override each other.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("results.dir", "results")
	viper.SetDefault("results.file", "results.json")
	viper.SetDefault("report.output", "docs/results.md")
	viper.SetDefault("rewrite.strategy", "split")
	viper.SetDefault("rewrite.chunk_size", 10000)
	viper.SetDefault("bench.output_dir", "output")
}

// initConfig loads the config file and environment. An explicit --config
// must exist; the default locations are optional.
func initConfig(cfgFile string) error {
	setDefaults()

	viper.SetEnvPrefix("VCFID_BENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	for _, path := range defaultConfigPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"vcfid-bench.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, configName))
	}
	return paths
}

// newLogger builds a console logger on stderr.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !viper.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
