// Package rewrite replaces the ID column of VCF data lines with a
// CHROM:POS:REF:ALT identifier derived from the same line.
package rewrite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/inodb/vcfid-bench/internal/vcf"
)

// DefaultChunkSize is the number of data lines the table strategy holds at once.
const DefaultChunkSize = 10000

// Rewriter streams lines from src to w, passing metadata lines through and
// rewriting the ID field of every data line. Output order matches input order.
type Rewriter interface {
	Name() string
	Rewrite(src vcf.LineSource, w io.Writer) (Stats, error)
}

// Stats counts the lines a rewrite has emitted.
type Stats struct {
	MetaLines int64
	Records   int64
}

// Options configures a Rewriter.
type Options struct {
	Marker    byte // metadata line prefix, '#' when zero
	Delimiter byte // field separator, '\t' when zero
	ChunkSize int  // table strategy only
	Logger    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Marker == 0 {
		o.Marker = vcf.DefaultMarker
	}
	if o.Delimiter == 0 {
		o.Delimiter = '\t'
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

var strategies = map[string]func(Options) Rewriter{
	"split":  func(o Options) Rewriter { return &SplitRewriter{opts: o} },
	"fields": func(o Options) Rewriter { return &FieldsRewriter{opts: o} },
	"table":  func(o Options) Rewriter { return &TableRewriter{opts: o} },
}

// Strategies returns the names accepted by New, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the Rewriter registered under name.
func New(name string, opts Options) (Rewriter, error) {
	mk, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown rewrite strategy %q (want one of %v)", name, Strategies())
	}
	return mk(opts.withDefaults()), nil
}

// File rewrites inPath into outPath ("-" for stdin/stdout). On failure the
// partially written output file is removed.
func File(rw Rewriter, inPath, outPath string) (Stats, error) {
	src, err := vcf.Open(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer src.Close()

	out, err := vcf.Create(outPath)
	if err != nil {
		return Stats{}, err
	}

	st, err := rw.Rewrite(src, out)
	if err != nil {
		out.Close()
		if outPath != "-" {
			os.Remove(outPath)
		}
		return st, err
	}

	if err := out.Close(); err != nil {
		return st, fmt.Errorf("close output: %w", err)
	}
	return st, nil
}

// lineFunc writes the rewritten form of one data line.
type lineFunc func(bw *bufio.Writer, l *vcf.Line) error

// stream drives the common read loop: metadata lines are copied and data
// lines are handed to fn one at a time.
func stream(src vcf.LineSource, w io.Writer, opts Options, fn lineFunc) (Stats, error) {
	bw := bufio.NewWriterSize(w, 1<<16)
	var st Stats

	for {
		l, err := src.Next()
		if err != nil {
			return st, err
		}
		if l == nil {
			break
		}

		if l.IsMeta(opts.Marker) {
			if err := writeLine(bw, l); err != nil {
				return st, err
			}
			st.MetaLines++
			continue
		}

		if err := fn(bw, l); err != nil {
			return st, err
		}
		st.Records++
	}

	if st.Records == 0 {
		opts.Logger.Info("0 records processed", zap.Int64("meta_lines", st.MetaLines))
	}

	return st, bw.Flush()
}

func writeLine(bw *bufio.Writer, l *vcf.Line) error {
	if _, err := bw.WriteString(l.Text); err != nil {
		return err
	}
	_, err := bw.WriteString(l.Term)
	return err
}
