package vcf

import (
	"errors"
	"fmt"
	"strings"
)

// Column indices of the fixed leading VCF fields.
const (
	ColChrom = iota
	ColPos
	ColID
	ColRef
	ColAlt

	// MinFields is the number of delimited fields a data line must carry.
	MinFields = 5
)

// ErrMalformedRecord is returned for data lines with fewer than MinFields fields.
var ErrMalformedRecord = errors.New("malformed record")

// Record is a data line split into its leading fields and an opaque remainder.
// Pos is kept as written; it is never reformatted.
type Record struct {
	Chrom string
	Pos   string
	ID    string
	Ref   string
	Alt   string // may hold several comma-separated alleles
	Rest  string // everything after the fifth delimiter, never re-split
	// HasRest is false when the line had exactly five fields.
	HasRest bool
}

// ParseRecord splits text (without its line terminator) into a Record.
// At most six fields are produced, so delimiters inside Rest are untouched.
func ParseRecord(text string, delim byte) (Record, error) {
	var f [MinFields]string
	rest := text
	for i := 0; i < MinFields-1; i++ {
		j := strings.IndexByte(rest, delim)
		if j < 0 {
			return Record{}, malformed(i + 1)
		}
		f[i] = rest[:j]
		rest = rest[j+1:]
	}

	r := Record{Chrom: f[ColChrom], Pos: f[ColPos], ID: f[ColID], Ref: f[ColRef]}
	if j := strings.IndexByte(rest, delim); j >= 0 {
		r.Alt = rest[:j]
		r.Rest = rest[j+1:]
		r.HasRest = true
	} else {
		r.Alt = rest
	}
	return r, nil
}

func malformed(found int) error {
	return fmt.Errorf("%w: expected at least %d columns, found %d", ErrMalformedRecord, MinFields, found)
}

// FirstAlt returns the first allele of a possibly multi-allelic ALT.
func (r *Record) FirstAlt() string {
	return FirstAllele(r.Alt)
}

// DerivedID returns the CHROM:POS:REF:ALT identifier for the record.
func (r *Record) DerivedID() string {
	return FormatVariantID(r.Chrom, r.Pos, r.Ref, r.FirstAlt())
}

// AppendTo appends the record to dst with ID replaced by DerivedID.
// No line terminator is written.
func (r *Record) AppendTo(dst []byte, delim byte) []byte {
	alt := r.FirstAlt()
	dst = append(dst, r.Chrom...)
	dst = append(dst, delim)
	dst = append(dst, r.Pos...)
	dst = append(dst, delim)
	dst = append(dst, r.Chrom...)
	dst = append(dst, ':')
	dst = append(dst, r.Pos...)
	dst = append(dst, ':')
	dst = append(dst, r.Ref...)
	dst = append(dst, ':')
	dst = append(dst, alt...)
	dst = append(dst, delim)
	dst = append(dst, r.Ref...)
	dst = append(dst, delim)
	dst = append(dst, r.Alt...)
	if r.HasRest {
		dst = append(dst, delim)
		dst = append(dst, r.Rest...)
	}
	return dst
}

// FirstAllele returns alt up to its first comma.
func FirstAllele(alt string) string {
	if i := strings.IndexByte(alt, ','); i >= 0 {
		return alt[:i]
	}
	return alt
}

// FormatVariantID formats a variant identifier as CHROM:POS:REF:ALT.
func FormatVariantID(chrom, pos, ref, alt string) string {
	return chrom + ":" + pos + ":" + ref + ":" + alt
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
