package vcf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src LineSource) []*Line {
	t.Helper()
	var lines []*Line
	for {
		l, err := src.Next()
		require.NoError(t, err)
		if l == nil {
			return lines
		}
		lines = append(lines, l)
	}
}

func TestReader_Terminators(t *testing.T) {
	r := NewReader(strings.NewReader("##a\r\n#CHROM\n1\t2\t.\tA\tC"))
	lines := readAll(t, r)
	require.Len(t, lines, 3)

	assert.Equal(t, Line{Text: "##a", Term: "\r\n", Number: 1}, *lines[0])
	assert.Equal(t, Line{Text: "#CHROM", Term: "\n", Number: 2}, *lines[1])
	assert.Equal(t, Line{Text: "1\t2\t.\tA\tC", Term: "", Number: 3}, *lines[2])
	assert.Equal(t, 3, r.LineNumber())
}

func TestReader_Empty(t *testing.T) {
	r := NewReader(strings.NewReader(""))
	l, err := r.Next()
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestLine_IsMeta(t *testing.T) {
	assert.True(t, (&Line{Text: "##fileformat=VCFv4.2"}).IsMeta('#'))
	assert.True(t, (&Line{Text: "#CHROM\tPOS"}).IsMeta('#'))
	assert.False(t, (&Line{Text: "1\t#2"}).IsMeta('#'))
	assert.False(t, (&Line{Text: ""}).IsMeta('#'))
}

func TestLine_RecordError(t *testing.T) {
	l := &Line{Text: "chr1\t100\tX", Number: 7}
	_, err := l.Record('\t')
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 7, pe.Line)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestOpen_Plain(t *testing.T) {
	testFile := findTestFile(t, "small.vcf")

	r, err := Open(testFile)
	require.NoError(t, err)
	defer r.Close()

	lines := readAll(t, r)
	require.NotEmpty(t, lines)
	assert.Equal(t, "##fileformat=VCFv4.2", lines[0].Text)

	var data int
	for _, l := range lines {
		if !l.IsMeta(DefaultMarker) {
			data++
		}
	}
	assert.Equal(t, 4, data)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.vcf"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)))
}

func TestCreate_BGZFRoundTrip(t *testing.T) {
	content := "##fileformat=VCFv4.2\n#CHROM\tPOS\tID\tREF\tALT\n1\t10\t1:10:A:C\tA\tC\n"
	path := filepath.Join(t.TempDir(), "out", "test.vcf.gz")

	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var buf bytes.Buffer
	for _, l := range readAll(t, r) {
		buf.WriteString(l.Text + l.Term)
	}
	assert.Equal(t, content, buf.String())
}

func TestCreate_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vcf")

	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("#x\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#x\n", string(got))
}

// findTestFile locates a test file in the testdata directory.
func findTestFile(t *testing.T, name string) string {
	t.Helper()

	// Try different relative paths
	paths := []string{
		filepath.Join("testdata", name),
		filepath.Join("..", "..", "testdata", name),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	t.Fatalf("Test file not found: %s", name)
	return ""
}
