package report

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcfid-bench/internal/aggregate"
	"github.com/inodb/vcfid-bench/internal/results"
)

func rec(approach string, time, mem float64, md5 string) results.Record {
	return results.Record{
		Approach:    approach,
		TimeSeconds: results.Number(time),
		MemoryKB:    results.Number(mem),
		MD5:         md5,
	}
}

func sampleSummary(t *testing.T) *aggregate.Summary {
	t.Helper()
	s, err := aggregate.Summarize([]results.Record{
		rec("python_vanilla", 10, 2048, "0123456789abcdef"),
		rec("baseline_cat", 1, 1024, "ffffffffffffffff"),
		rec("rust", 2, 4096, "0123456789abcdef"),
		rec("mystery", 4, 3072, "aaaaaaaaaaaaaaaa"),
	}, aggregate.DefaultConfig())
	require.NoError(t, err)
	return s
}

func TestNames_Display(t *testing.T) {
	names := DefaultNames()
	assert.Equal(t, "Baseline (cat)", names.Display("baseline_cat"))
	assert.Equal(t, "Python (maxsplit+dowhile)", names.Display("python_maxsplit_dowhile"))
	assert.Equal(t, "unknown_thing", names.Display("unknown_thing"))

	merged := names.Merge(map[string]string{"rust": "Rust (release)", "zig": "Zig"})
	assert.Equal(t, "Rust (release)", merged.Display("rust"))
	assert.Equal(t, "Zig", merged.Display("zig"))
	assert.Equal(t, "Rust", names.Display("rust"))
}

func TestTimeChart(t *testing.T) {
	s := sampleSummary(t)
	got := TimeChart(s.Ordered, DefaultNames())

	want := Chart{
		Title:    "Execution Time by Approach",
		YLabel:   "Time (seconds)",
		Labels:   []string{"Baseline (cat)", "Rust", "mystery", "Python (vanilla)"},
		Values:   []float64{1, 2, 4, 10},
		Decimals: -1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TimeChart mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 11.0, got.AxisMax(), 1e-9)
}

func TestMemoryChart(t *testing.T) {
	s := sampleSummary(t)
	got := MemoryChart(s.Ordered, DefaultNames())

	want := Chart{
		Title:    "Peak Memory Usage by Approach",
		YLabel:   "Memory (MB)",
		Labels:   []string{"Baseline (cat)", "Python (vanilla)", "mystery", "Rust"},
		Values:   []float64{1, 2, 3, 4},
		Decimals: 1,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MemoryChart mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 4.4, got.AxisMax(), 1e-9)
}

func TestChart_AxisMaxEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Chart{}.AxisMax())
}

func TestResultsTable(t *testing.T) {
	s := sampleSummary(t)
	s.Ordered[1].Note = "release build"

	got := ResultsTable(s, DefaultNames())
	want := Table{
		Header: []string{"Approach", "Time (seconds)", "Memory (MB)", "MD5 Checksum", "Notes"},
		Rows: [][]string{
			{"Baseline (cat)", "1.000", "1.0", "`ffffffff... ⚠️`", ""},
			{"Rust", "2.000", "4.0", "`01234567... ✓`", "release build"},
			{"mystery", "4.000", "3.0", "`aaaaaaaa... ⚠️`", ""},
			{"Python (vanilla)", "10.000", "2.0", "`01234567... ✓`", ""},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResultsTable mismatch (-want +got):\n%s", diff)
	}
}

func TestShortChecksum(t *testing.T) {
	assert.Equal(t, "d41d8cd9...", ShortChecksum("d41d8cd98f00b204e9800998ecf8427e"))
	assert.Equal(t, "N/A...", ShortChecksum("N/A"))
}

func TestBuild_Nil(t *testing.T) {
	d := Build(nil, Options{})
	assert.Equal(t, Placeholder(), d)
}

func TestBuild_Sections(t *testing.T) {
	d := Build(sampleSummary(t), Options{Divergent: []string{"python_scikit_allel"}})

	var headings []string
	for _, b := range d.Blocks {
		if h, ok := b.(Heading); ok && h.Level == 2 {
			headings = append(headings, h.Text)
		}
	}
	assert.Equal(t, []string{
		"Performance Overview",
		"Performance Insights",
		"Execution Time Comparison",
		"Memory Usage Comparison",
		"Detailed Results",
		"MD5 Checksums",
		"Interpreting the Results",
		"Notes",
	}, headings)
}

func TestBuild_NoInsightsForBaselineOnly(t *testing.T) {
	s, err := aggregate.Summarize([]results.Record{rec("baseline_cat", 1, 1024, "x")}, aggregate.DefaultConfig())
	require.NoError(t, err)

	md := Build(s, Options{}).Markdown()
	assert.NotContains(t, md, "Performance Insights")
	assert.Contains(t, md, "Found 0 different MD5 checksums")
}
