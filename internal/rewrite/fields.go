package rewrite

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/vcfid-bench/internal/vcf"
)

// FieldsRewriter splits each data line on every delimiter, replaces the ID
// field and joins the fields back together.
type FieldsRewriter struct {
	opts Options
}

// Name returns the strategy name.
func (f *FieldsRewriter) Name() string { return "fields" }

// Rewrite implements Rewriter.
func (f *FieldsRewriter) Rewrite(src vcf.LineSource, w io.Writer) (Stats, error) {
	sep := string(f.opts.Delimiter)
	return stream(src, w, f.opts, func(bw *bufio.Writer, l *vcf.Line) error {
		m := strings.Split(l.Text, sep)
		if len(m) < vcf.MinFields {
			return l.Malformed(len(m))
		}
		m[vcf.ColID] = vcf.FormatVariantID(m[vcf.ColChrom], m[vcf.ColPos], m[vcf.ColRef],
			vcf.FirstAllele(m[vcf.ColAlt]))

		if _, err := bw.WriteString(strings.Join(m, sep)); err != nil {
			return err
		}
		_, err := bw.WriteString(l.Term)
		return err
	})
}
