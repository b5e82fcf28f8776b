package vcf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMarker is the first byte of metadata and header lines.
const DefaultMarker = '#'

// Line is one raw input line split from its terminator.
type Line struct {
	Text   string // line content without terminator
	Term   string // "\n", "\r\n", or "" for an unterminated final line
	Number int    // 1-based line number
}

// IsMeta reports whether the line is a metadata or header line.
func (l *Line) IsMeta(marker byte) bool {
	return len(l.Text) > 0 && l.Text[0] == marker
}

// Record parses the line as a data record.
func (l *Line) Record(delim byte) (Record, error) {
	r, err := ParseRecord(l.Text, delim)
	if err != nil {
		return Record{}, &ParseError{Line: l.Number, Message: err.Error(), Err: err}
	}
	return r, nil
}

// Malformed returns the error for a data line that split into only found fields.
func (l *Line) Malformed(found int) error {
	err := malformed(found)
	return &ParseError{Line: l.Number, Message: err.Error(), Err: err}
}

// Reader reads raw lines from a VCF stream.
type Reader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// Open opens a VCF file for reading.
// Supports plain VCF and gzip or BGZF compressed VCF (.vcf.gz); "-" reads stdin.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	r := &Reader{file: file}
	br := bufio.NewReaderSize(file, 1<<16)

	// Check for gzip magic number (0x1f, 0x8b)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read vcf header: %w", err)
	}

	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		r.gzipReader, err = gzip.NewReader(br)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		r.reader = bufio.NewReaderSize(r.gzipReader, 1<<16)
	} else {
		r.reader = br
	}

	return r, nil
}

// NewReader creates a Reader from an io.Reader (e.g., stdin).
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 1<<16)
	}
	return &Reader{reader: br}
}

// Next reads the next line. Returns nil, nil when there are no more lines.
func (r *Reader) Next() (*Line, error) {
	text, err := r.reader.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
		}
		if text == "" {
			return nil, nil
		}
	}
	r.lineNumber++

	l := &Line{Number: r.lineNumber}
	switch {
	case strings.HasSuffix(text, "\r\n"):
		l.Text, l.Term = text[:len(text)-2], "\r\n"
	case strings.HasSuffix(text, "\n"):
		l.Text, l.Term = text[:len(text)-1], "\n"
	default:
		l.Text = text
	}
	return l, nil
}

// LineNumber returns the number of the last line read.
func (r *Reader) LineNumber() int {
	return r.lineNumber
}

// Close closes the reader and underlying file.
func (r *Reader) Close() error {
	if r.gzipReader != nil {
		r.gzipReader.Close()
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}
