// Package vcf provides streaming access to VCF lines and records.
package vcf

// LineSource is the interface for readers that yield raw VCF lines.
// Both plain and gzip/BGZF inputs are exposed through it.
type LineSource interface {
	// Next reads the next line.
	// Returns nil, nil when there are no more lines.
	Next() (*Line, error)

	// LineNumber returns the number of the last line read.
	LineNumber() int
}
