// Package results loads and stores per-approach benchmark result records.
package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// DefaultFileName is the name of the result file written for each approach.
const DefaultFileName = "results.json"

// MissingMD5 stands in for a record without a checksum.
const MissingMD5 = "N/A"

// Number is a float that decodes from either a JSON number or a numeric
// string, and encodes as a string.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(b)), 64)
	if err != nil {
		return fmt.Errorf("parse number %q: %w", b, err)
	}
	*n = Number(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatFloat(float64(n), 'f', -1, 64))
}

// Record is the measurement produced by running one approach once.
type Record struct {
	Approach    string `json:"approach"`
	TimeSeconds Number `json:"time_seconds"`
	MemoryKB    Number `json:"memory_kb"`
	MD5         string `json:"md5,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Time returns the wall time in seconds.
func (r *Record) Time() float64 { return float64(r.TimeSeconds) }

// MemoryMB returns peak memory in megabytes.
func (r *Record) MemoryMB() float64 { return float64(r.MemoryKB) / 1024 }

// Checksum returns the MD5, or MissingMD5 when the record has none.
func (r *Record) Checksum() string {
	if r.MD5 == "" {
		return MissingMD5
	}
	return r.MD5
}

// Decode parses a single result record.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, err
	}
	if rec.Approach == "" {
		return Record{}, errors.New("missing approach")
	}
	if rec.TimeSeconds < 0 || rec.MemoryKB < 0 {
		return Record{}, fmt.Errorf("approach %s: negative measurement", rec.Approach)
	}
	return rec, nil
}

// LoadDir walks dir and decodes every file named fileName, in lexical walk
// order. A missing dir yields no records and no error.
func LoadDir(dir, fileName string) ([]Record, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}

	var records []Record
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || d.Name() != fileName {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read result file: %w", err)
		}
		rec, err := Decode(data)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Sort orders records by ascending time; ties keep their input order.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TimeSeconds < records[j].TimeSeconds
	})
}

// WriteFile writes rec as indented JSON, creating parent directories.
func WriteFile(path string, rec Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}
