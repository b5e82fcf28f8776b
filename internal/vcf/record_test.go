package vcf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
	}{
		{
			name: "eight columns",
			line: "chr1\t100\tOLD\tA\tG\tQUAL\tPASS\tINFO=1",
			want: Record{Chrom: "chr1", Pos: "100", ID: "OLD", Ref: "A", Alt: "G",
				Rest: "QUAL\tPASS\tINFO=1", HasRest: true},
		},
		{
			name: "exactly five columns",
			line: "1\t5\t.\tC\tT",
			want: Record{Chrom: "1", Pos: "5", ID: ".", Ref: "C", Alt: "T"},
		},
		{
			name: "empty remainder",
			line: "1\t5\t.\tC\tT\t",
			want: Record{Chrom: "1", Pos: "5", ID: ".", Ref: "C", Alt: "T", HasRest: true},
		},
		{
			name: "multi-allelic",
			line: "chr2\t50\tX\tA\tG,T\tEXTRA",
			want: Record{Chrom: "chr2", Pos: "50", ID: "X", Ref: "A", Alt: "G,T",
				Rest: "EXTRA", HasRest: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.line, '\t')
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRecord_Malformed(t *testing.T) {
	tests := []struct {
		line  string
		found string
	}{
		{"", "found 1"},
		{"chr1\t100\tX", "found 3"},
		{"chr1\t100\tX\tA", "found 4"},
	}

	for _, tt := range tests {
		_, err := ParseRecord(tt.line, '\t')
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformedRecord))
		assert.Contains(t, err.Error(), tt.found)
	}
}

func TestRecord_AppendTo(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "remainder preserved",
			line: "chr1\t100\tOLD\tA\tG\tQUAL\tPASS\tINFO=1",
			want: "chr1\t100\tchr1:100:A:G\tA\tG\tQUAL\tPASS\tINFO=1",
		},
		{
			name: "first alt only",
			line: "chr2\t50\tX\tA\tG,T\tEXTRA",
			want: "chr2\t50\tchr2:50:A:G\tA\tG,T\tEXTRA",
		},
		{
			name: "no remainder",
			line: "1\t5\t.\tC\tT",
			want: "1\t5\t1:5:C:T\tC\tT",
		},
		{
			name: "position kept verbatim",
			line: "1\t0005\trs1\tC\t<DEL>\t.",
			want: "1\t0005\t1:0005:C:<DEL>\tC\t<DEL>\t.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecord(tt.line, '\t')
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(r.AppendTo(nil, '\t')))
		})
	}
}

func TestRecord_DerivedID(t *testing.T) {
	r := Record{Chrom: "12", Pos: "25245351", Ref: "C", Alt: "A,T"}
	assert.Equal(t, "12:25245351:C:A", r.DerivedID())
	assert.Equal(t, "A", r.FirstAlt())
}

func TestFirstAllele(t *testing.T) {
	assert.Equal(t, "G", FirstAllele("G"))
	assert.Equal(t, "G", FirstAllele("G,T,C"))
	assert.Equal(t, "", FirstAllele(",T"))
	assert.Equal(t, ".", FirstAllele("."))
}

func TestParseError(t *testing.T) {
	err := &ParseError{
		Line:    42,
		Message: "expected at least 5 columns, found 3",
		Err:     ErrMalformedRecord,
	}

	assert.Equal(t, "vcf parse error at line 42: expected at least 5 columns, found 3", err.Error())
	assert.ErrorIs(t, err, ErrMalformedRecord)
}
