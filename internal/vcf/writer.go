package vcf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bgzf"
)

// Create creates a VCF output file. Paths ending in ".gz" are written as
// BGZF so the output stays indexable; "-" writes to stdout.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create vcf file: %w", err)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return file, nil
	}
	return &bgzfFile{Writer: bgzf.NewWriter(file, 1), file: file}, nil
}

// bgzfFile closes the BGZF stream (writing the EOF block) and then the file.
type bgzfFile struct {
	*bgzf.Writer
	file *os.File
}

func (b *bgzfFile) Close() error {
	if err := b.Writer.Close(); err != nil {
		b.file.Close()
		return fmt.Errorf("close bgzf stream: %w", err)
	}
	return b.file.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
