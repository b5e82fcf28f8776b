// Package bench runs benchmark approaches one at a time and records their
// wall time, peak memory and output checksum.
package bench

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/inodb/vcfid-bench/internal/results"
)

// Command placeholders substituted in Approach.Command.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// Approach is one implementation being benchmarked. Exactly one of Strategy
// (an in-process rewrite strategy) or Command must be set.
type Approach struct {
	Name     string   `mapstructure:"name" yaml:"name"`
	Strategy string   `mapstructure:"strategy" yaml:"strategy,omitempty"`
	Command  []string `mapstructure:"command" yaml:"command,omitempty"`
	Note     string   `mapstructure:"note" yaml:"note,omitempty"`
}

// Validate checks that the approach is runnable.
func (a *Approach) Validate() error {
	if a.Name == "" {
		return errors.New("approach without name")
	}
	if strings.ContainsAny(a.Name, `/\`) {
		return fmt.Errorf("approach %s: name must not contain path separators", a.Name)
	}
	switch {
	case a.Strategy != "" && len(a.Command) > 0:
		return fmt.Errorf("approach %s: set either strategy or command, not both", a.Name)
	case a.Strategy == "" && len(a.Command) == 0:
		return fmt.Errorf("approach %s: strategy or command required", a.Name)
	}
	return nil
}

// Runner executes approaches against a single input file.
type Runner struct {
	Input      string // VCF every approach reads
	ResultsDir string // results/<approach>/results.json
	OutputDir  string // <approach>.vcf outputs
	// Executable runs in-process strategies as
	// "<Executable> rewrite --strategy <s> -i <input> -o <output>".
	Executable string
	Logger     *zap.Logger
}

// Run executes each approach sequentially and writes its result record.
// The first failing approach aborts the run.
func (r *Runner) Run(ctx context.Context, approaches []Approach) ([]results.Record, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if _, err := os.Stat(r.Input); err != nil {
		return nil, fmt.Errorf("benchmark input: %w", err)
	}
	for i := range approaches {
		if err := approaches[i].Validate(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var recs []results.Record
	for _, a := range approaches {
		logger.Info("running approach", zap.String("approach", a.Name))

		rec, err := r.runOne(ctx, a)
		if err != nil {
			return recs, fmt.Errorf("approach %s: %w", a.Name, err)
		}

		path := filepath.Join(r.ResultsDir, a.Name, results.DefaultFileName)
		if err := results.WriteFile(path, rec); err != nil {
			return recs, err
		}

		logger.Info("approach finished",
			zap.String("approach", a.Name),
			zap.Float64("time_seconds", rec.Time()),
			zap.Float64("memory_kb", float64(rec.MemoryKB)),
			zap.String("md5", rec.MD5))
		recs = append(recs, rec)
	}
	return recs, nil
}

func (r *Runner) runOne(ctx context.Context, a Approach) (results.Record, error) {
	output := filepath.Join(r.OutputDir, a.Name+".vcf")
	args, toStdout := r.commandLine(a, output)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stderr = os.Stderr

	var out *os.File
	if toStdout {
		f, err := os.Create(output)
		if err != nil {
			return results.Record{}, fmt.Errorf("create output: %w", err)
		}
		out = f
		cmd.Stdout = f
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if out != nil {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return results.Record{}, err
	}

	sum, err := FileMD5(output)
	if err != nil {
		return results.Record{}, err
	}

	return results.Record{
		Approach:    a.Name,
		TimeSeconds: results.Number(elapsed.Seconds()),
		MemoryKB:    results.Number(peakRSSKB(cmd.ProcessState)),
		MD5:         sum,
		Note:        a.Note,
	}, nil
}

// commandLine expands the approach into argv. toStdout is true when the
// command has no output placeholder and its stdout becomes the output file.
func (r *Runner) commandLine(a Approach, output string) (args []string, toStdout bool) {
	if a.Strategy != "" {
		return []string{r.Executable, "rewrite", "--strategy", a.Strategy, "-i", r.Input, "-o", output}, false
	}

	toStdout = true
	args = make([]string, len(a.Command))
	for i, arg := range a.Command {
		if strings.Contains(arg, OutputPlaceholder) {
			toStdout = false
		}
		arg = strings.ReplaceAll(arg, InputPlaceholder, r.Input)
		args[i] = strings.ReplaceAll(arg, OutputPlaceholder, output)
	}
	return args, toStdout
}

// peakRSSKB returns the child's maximum resident set size in kilobytes.
// Linux reports ru_maxrss in kilobytes.
func peakRSSKB(ps *os.ProcessState) float64 {
	if ps == nil {
		return 0
	}
	ru, ok := ps.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0
	}
	return float64(ru.Maxrss)
}

// FileMD5 returns the hex MD5 digest of the file at path.
func FileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum output: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
