package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResult(t *testing.T, dir, approach, body string) {
	t.Helper()
	p := filepath.Join(dir, approach, DefaultFileName)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Record
	}{
		{
			name: "stringified numbers",
			body: `{"approach":"awk","time_seconds":"12.5","memory_kb":"2048","md5":"abc"}`,
			want: Record{Approach: "awk", TimeSeconds: 12.5, MemoryKB: 2048, MD5: "abc"},
		},
		{
			name: "plain numbers and note",
			body: `{"approach":"rust","time_seconds":1.25,"memory_kb":512,"md5":"def","note":"release build"}`,
			want: Record{Approach: "rust", TimeSeconds: 1.25, MemoryKB: 512, MD5: "def", Note: "release build"},
		},
		{
			name: "padded string",
			body: `{"approach":"cat","time_seconds":" 0.40 ","memory_kb":"100"}`,
			want: Record{Approach: "cat", TimeSeconds: 0.4, MemoryKB: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"non-numeric time", `{"approach":"a","time_seconds":"fast","memory_kb":"1"}`},
		{"missing approach", `{"time_seconds":"1","memory_kb":"1"}`},
		{"negative memory", `{"approach":"a","time_seconds":"1","memory_kb":"-1"}`},
		{"not json", `time=1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}

func TestRecord_Checksum(t *testing.T) {
	assert.Equal(t, MissingMD5, (&Record{}).Checksum())
	assert.Equal(t, "x", (&Record{MD5: "x"}).Checksum())
	assert.InDelta(t, 2.0, (&Record{MemoryKB: 2048}).MemoryMB(), 1e-9)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "b", `{"approach":"b","time_seconds":"2","memory_kb":"40","md5":"x"}`)
	writeResult(t, dir, "a", `{"approach":"a","time_seconds":"5","memory_kb":"10","md5":"x"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "other.json"), []byte("{}"), 0644))

	records, err := LoadDir(dir, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Approach)
	assert.Equal(t, "b", records[1].Approach)
}

func TestLoadDir_Missing(t *testing.T) {
	records, err := LoadDir(filepath.Join(t.TempDir(), "nope"), DefaultFileName)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadDir_BadRecord(t *testing.T) {
	dir := t.TempDir()
	writeResult(t, dir, "a", `{"approach":"a","time_seconds":"n/a","memory_kb":"10"}`)

	_, err := LoadDir(dir, DefaultFileName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestSort_Stable(t *testing.T) {
	records := []Record{
		{Approach: "slow", TimeSeconds: 9},
		{Approach: "tie1", TimeSeconds: 1},
		{Approach: "fast", TimeSeconds: 0.5},
		{Approach: "tie2", TimeSeconds: 1},
	}
	Sort(records)

	var got []string
	for _, r := range records {
		got = append(got, r.Approach)
	}
	assert.Equal(t, []string{"fast", "tie1", "tie2", "slow"}, got)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "go_split", DefaultFileName)
	rec := Record{Approach: "go_split", TimeSeconds: 1.234, MemoryKB: 8192, MD5: "d41d8cd98f00b204e9800998ecf8427e"}
	require.NoError(t, WriteFile(p, rec))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time_seconds": "1.234"`)
	assert.NotContains(t, string(data), "note")

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}
