package rewrite

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"go.uber.org/zap"

	"github.com/inodb/vcfid-bench/internal/vcf"
)

// Dataframe column names, in record order.
const (
	colChrom = "CHROM"
	colPos   = "POS"
	colID    = "ID"
	colRef   = "REF"
	colAlt   = "ALT"
	colRest  = "REST"
)

var tableHeader = []string{colChrom, colPos, colID, colRef, colAlt, colRest}

// TableRewriter loads data lines into a string-typed DataFrame one chunk at a
// time and derives the ID column from the CHROM, POS, REF and ALT columns.
// A metadata line between data lines flushes the pending chunk first.
type TableRewriter struct {
	opts Options
}

// rowInfo keeps what the DataFrame cannot: whether the line had a remainder
// and how it was terminated.
type rowInfo struct {
	term    string
	hasRest bool
}

// Name returns the strategy name.
func (t *TableRewriter) Name() string { return "table" }

// Rewrite implements Rewriter.
func (t *TableRewriter) Rewrite(src vcf.LineSource, w io.Writer) (Stats, error) {
	bw := bufio.NewWriterSize(w, 1<<16)
	var st Stats

	rows := make([][]string, 1, t.opts.ChunkSize+1)
	rows[0] = tableHeader
	info := make([]rowInfo, 0, t.opts.ChunkSize)

	flush := func() error {
		if len(info) == 0 {
			return nil
		}
		if err := t.writeChunk(bw, rows, info); err != nil {
			return err
		}
		st.Records += int64(len(info))
		rows = rows[:1]
		info = info[:0]
		return nil
	}

	for {
		l, err := src.Next()
		if err != nil {
			return st, err
		}
		if l == nil {
			break
		}

		if l.IsMeta(t.opts.Marker) {
			if err := flush(); err != nil {
				return st, err
			}
			if err := writeLine(bw, l); err != nil {
				return st, err
			}
			st.MetaLines++
			continue
		}

		rec, err := l.Record(t.opts.Delimiter)
		if err != nil {
			return st, err
		}
		rows = append(rows, []string{rec.Chrom, rec.Pos, rec.ID, rec.Ref, rec.Alt, rec.Rest})
		info = append(info, rowInfo{term: l.Term, hasRest: rec.HasRest})

		if len(info) >= t.opts.ChunkSize {
			if err := flush(); err != nil {
				return st, err
			}
		}
	}

	if err := flush(); err != nil {
		return st, err
	}

	if st.Records == 0 {
		t.opts.Logger.Info("0 records processed", zap.Int64("meta_lines", st.MetaLines))
	}

	return st, bw.Flush()
}

// writeChunk builds a DataFrame from rows (header first), replaces the ID
// column and writes the chunk back out.
func (t *TableRewriter) writeChunk(bw *bufio.Writer, rows [][]string, info []rowInfo) error {
	df := dataframe.LoadRecords(rows,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return fmt.Errorf("load chunk: %w", df.Err)
	}

	df = df.Mutate(derivedIDs(df))
	if df.Err != nil {
		return fmt.Errorf("derive ids: %w", df.Err)
	}

	t.opts.Logger.Debug("writing chunk", zap.Int("rows", df.Nrow()))

	delim := t.opts.Delimiter
	for i, row := range df.Records()[1:] {
		for j := vcf.ColChrom; j <= vcf.ColAlt; j++ {
			if j > vcf.ColChrom {
				if err := bw.WriteByte(delim); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(row[j]); err != nil {
				return err
			}
		}
		if info[i].hasRest {
			if err := bw.WriteByte(delim); err != nil {
				return err
			}
			if _, err := bw.WriteString(row[len(row)-1]); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(info[i].term); err != nil {
			return err
		}
	}
	return nil
}

// derivedIDs computes the new ID column over a whole chunk.
func derivedIDs(df dataframe.DataFrame) series.Series {
	chrom := df.Col(colChrom).Records()
	pos := df.Col(colPos).Records()
	ref := df.Col(colRef).Records()
	alt := df.Col(colAlt).Records()

	ids := make([]string, len(chrom))
	for i := range ids {
		ids[i] = vcf.FormatVariantID(chrom[i], pos[i], ref[i], vcf.FirstAllele(alt[i]))
	}
	return series.New(ids, series.String, colID)
}
