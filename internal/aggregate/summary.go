// Package aggregate derives rankings and checksum consistency from a set of
// benchmark result records.
package aggregate

import (
	"errors"

	"github.com/inodb/vcfid-bench/internal/results"
)

var (
	// ErrNoResults is returned when there are no records to summarize.
	ErrNoResults = errors.New("no benchmark results found")

	// ErrDivisionUndefined is returned when a ratio has a zero denominator.
	ErrDivisionUndefined = errors.New("division undefined: zero denominator")
)

// Default approach identifiers excluded from comparisons.
const (
	DefaultBaseline  = "baseline_cat"
	DefaultDivergent = "python_scikit_allel"
)

// Config names the approaches that receive special treatment.
type Config struct {
	// Baseline is excluded from rankings and used as the overhead reference.
	Baseline string
	// Divergent approaches are known to produce different output and are
	// excluded from the checksum consistency check.
	Divergent []string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Baseline: DefaultBaseline, Divergent: []string{DefaultDivergent}}
}

// Extreme is a minimum or maximum value with the approach that owns it.
type Extreme struct {
	Approach string
	Value    float64
}

// Ratio is a quotient that may be undefined.
type Ratio struct {
	Value   float64
	Defined bool
}

func newRatio(num, den float64) Ratio {
	if den == 0 {
		return Ratio{}
	}
	return Ratio{Value: num / den, Defined: true}
}

// Overhead compares the fastest processing approach with the baseline.
type Overhead struct {
	Seconds float64 // may be negative
	Percent Ratio   // undefined when baseline time is zero
}

// Consistency reports how many distinct checksums the compared approaches produced.
type Consistency struct {
	Distinct int
	AllMatch bool
}

// Summary is the aggregated view of one benchmark run.
type Summary struct {
	// Ordered holds all records by ascending time, ties in input order.
	Ordered []results.Record
	// Processing is false when only the baseline was recorded; the
	// extremes and ratios are then zero.
	Processing  bool
	Fastest     Extreme
	Slowest     Extreme
	LeastMemory Extreme
	MostMemory  Extreme
	SpeedRatio  Ratio
	MemoryRatio Ratio
	// Overhead is nil without a baseline record.
	Overhead    *Overhead
	Consistency Consistency
	// Majority is the most frequent checksum; Matches[i] reports whether
	// Ordered[i] carries it.
	Majority string
	Matches  []bool
	// Excluded lists the approaches left out of the consistency check
	// that were actually present.
	Excluded []string
}

// Summarize aggregates records. The input slice is not modified.
func Summarize(records []results.Record, cfg Config) (*Summary, error) {
	if len(records) == 0 {
		return nil, ErrNoResults
	}

	ordered := make([]results.Record, len(records))
	copy(ordered, records)
	results.Sort(ordered)

	s := &Summary{Ordered: ordered}
	s.rank(cfg.Baseline)
	s.checkConsistency(cfg)
	s.Majority, s.Matches = majority(ordered)
	return s, nil
}

// rank fills the extremes, ratios and overhead over non-baseline records.
func (s *Summary) rank(baseline string) {
	var base *results.Record
	for i := range s.Ordered {
		r := &s.Ordered[i]
		if r.Approach == baseline {
			if base == nil {
				base = r
			}
			continue
		}

		t, m := r.Time(), float64(r.MemoryKB)
		if !s.Processing {
			s.Processing = true
			s.Fastest = Extreme{r.Approach, t}
			s.Slowest = Extreme{r.Approach, t}
			s.LeastMemory = Extreme{r.Approach, m}
			s.MostMemory = Extreme{r.Approach, m}
			continue
		}
		if t < s.Fastest.Value {
			s.Fastest = Extreme{r.Approach, t}
		}
		if t > s.Slowest.Value {
			s.Slowest = Extreme{r.Approach, t}
		}
		if m < s.LeastMemory.Value {
			s.LeastMemory = Extreme{r.Approach, m}
		}
		if m > s.MostMemory.Value {
			s.MostMemory = Extreme{r.Approach, m}
		}
	}

	if !s.Processing {
		return
	}

	s.SpeedRatio = newRatio(s.Slowest.Value, s.Fastest.Value)
	s.MemoryRatio = newRatio(s.MostMemory.Value, s.LeastMemory.Value)

	if base != nil {
		o := &Overhead{Seconds: s.Fastest.Value - base.Time()}
		if pct, err := OverheadPercent(o.Seconds, base.Time()); err == nil {
			o.Percent = Ratio{Value: pct, Defined: true}
		}
		s.Overhead = o
	}
}

// OverheadPercent returns overhead as a percentage of baseline.
func OverheadPercent(overhead, baseline float64) (float64, error) {
	if baseline == 0 {
		return 0, ErrDivisionUndefined
	}
	return overhead / baseline * 100, nil
}

// checkConsistency counts distinct checksums outside the exclusion set.
func (s *Summary) checkConsistency(cfg Config) {
	excluded := map[string]bool{cfg.Baseline: true}
	for _, name := range cfg.Divergent {
		excluded[name] = true
	}

	seen := make(map[string]bool)
	present := make(map[string]bool)
	for i := range s.Ordered {
		r := &s.Ordered[i]
		if excluded[r.Approach] {
			if !present[r.Approach] {
				present[r.Approach] = true
				s.Excluded = append(s.Excluded, r.Approach)
			}
			continue
		}
		seen[r.Checksum()] = true
	}

	s.Consistency = Consistency{Distinct: len(seen), AllMatch: len(seen) == 1}
}

// majority returns the most frequent checksum across all records, ties going
// to the value encountered first, and a per-record match flag.
func majority(ordered []results.Record) (string, []bool) {
	counts := make(map[string]int)
	var order []string
	for i := range ordered {
		sum := ordered[i].Checksum()
		if counts[sum] == 0 {
			order = append(order, sum)
		}
		counts[sum]++
	}

	var best string
	bestCount := 0
	for _, sum := range order {
		if counts[sum] > bestCount {
			best, bestCount = sum, counts[sum]
		}
	}

	matches := make([]bool, len(ordered))
	for i := range ordered {
		matches[i] = ordered[i].Checksum() == best
	}
	return best, matches
}
