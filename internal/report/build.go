package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inodb/vcfid-bench/internal/aggregate"
	"github.com/inodb/vcfid-bench/internal/results"
)

// Title is the heading of every generated document.
const Title = "Benchmark Results"

// DefaultDataset describes the input used for the benchmark.
const DefaultDataset = "a 1.3GB VCF file with 100,000 lines"

// Options controls the text of a generated document.
type Options struct {
	Names     Names
	Dataset   string
	Baseline  string
	Divergent []string
}

func (o Options) withDefaults() Options {
	if o.Names == nil {
		o.Names = DefaultNames()
	}
	if o.Dataset == "" {
		o.Dataset = DefaultDataset
	}
	if o.Baseline == "" {
		o.Baseline = aggregate.DefaultBaseline
	}
	return o
}

// Placeholder returns the document written when no results were found.
func Placeholder() *Document {
	d := &Document{Title: Title}
	d.add(Admonition{
		Kind:  "warning",
		Title: "No Results",
		Body:  "No benchmark results were found. The workflow may have failed.",
	})
	return d
}

// Build lays out the full results document for sum. A nil sum yields the
// placeholder.
func Build(sum *aggregate.Summary, opts Options) *Document {
	if sum == nil || len(sum.Ordered) == 0 {
		return Placeholder()
	}
	opts = opts.withDefaults()
	names := opts.Names

	d := &Document{Title: Title}
	d.add(Admonition{
		Kind:  "info",
		Title: "Auto-Generated Results",
		Body:  "This page is automatically generated by the benchmark workflow. Results are updated with each run.",
	})

	d.section("Performance Overview")
	d.add(Paragraph{Text: fmt.Sprintf(
		"The charts and tables below show the performance characteristics of each approach when processing %s.",
		opts.Dataset)})

	if sum.Processing {
		d.add(insights(sum, names)...)
	}

	d.section("Execution Time Comparison")
	d.add(TimeChart(sum.Ordered, names))

	d.section("Memory Usage Comparison")
	d.add(MemoryChart(sum.Ordered, names))

	d.section("Detailed Results")
	d.add(ResultsTable(sum, names))

	d.add(checksumSection(sum, opts)...)
	d.add(interpretation(opts)...)
	return d
}

// TimeChart charts execution time in time order.
func TimeChart(ordered []results.Record, names Names) Chart {
	c := Chart{Title: "Execution Time by Approach", YLabel: "Time (seconds)", Decimals: -1}
	for i := range ordered {
		c.Labels = append(c.Labels, names.Display(ordered[i].Approach))
		c.Values = append(c.Values, ordered[i].Time())
	}
	return c
}

// MemoryChart charts peak memory in MB, sorted by memory.
func MemoryChart(ordered []results.Record, names Names) Chart {
	byMem := make([]results.Record, len(ordered))
	copy(byMem, ordered)
	sort.SliceStable(byMem, func(i, j int) bool {
		return byMem[i].MemoryKB < byMem[j].MemoryKB
	})

	c := Chart{Title: "Peak Memory Usage by Approach", YLabel: "Memory (MB)", Decimals: 1}
	for i := range byMem {
		c.Labels = append(c.Labels, names.Display(byMem[i].Approach))
		c.Values = append(c.Values, byMem[i].MemoryMB())
	}
	return c
}

// ResultsTable lists every approach with its checksum flagged against the majority.
func ResultsTable(sum *aggregate.Summary, names Names) Table {
	t := Table{Header: []string{"Approach", "Time (seconds)", "Memory (MB)", "MD5 Checksum", "Notes"}}
	for i := range sum.Ordered {
		r := &sum.Ordered[i]
		mark := "✓"
		if !sum.Matches[i] {
			mark = "⚠️"
		}
		t.Rows = append(t.Rows, []string{
			names.Display(r.Approach),
			fmt.Sprintf("%.3f", r.Time()),
			fmt.Sprintf("%.1f", r.MemoryMB()),
			"`" + ShortChecksum(r.Checksum()) + " " + mark + "`",
			r.Note,
		})
	}
	return t
}

// ShortChecksum truncates a checksum to eight characters plus an ellipsis.
func ShortChecksum(sum string) string {
	if len(sum) > 8 {
		sum = sum[:8]
	}
	return sum + "..."
}

func insights(sum *aggregate.Summary, names Names) []Block {
	speed := []string{
		fmt.Sprintf("**Fastest**: %s at %.3f seconds", names.Display(sum.Fastest.Approach), sum.Fastest.Value),
		fmt.Sprintf("**Slowest**: %s at %.3f seconds", names.Display(sum.Slowest.Approach), sum.Slowest.Value),
		fmt.Sprintf("**Speed difference**: %s (fastest vs slowest)", formatRatio(sum.SpeedRatio)),
	}
	if o := sum.Overhead; o != nil {
		pct := "n/a"
		if o.Percent.Defined {
			pct = fmt.Sprintf("%.1f%%", o.Percent.Value)
		}
		speed = append(speed, fmt.Sprintf(
			"**Minimum processing overhead**: %.3f seconds (%s over baseline I/O)", o.Seconds, pct))
	}

	memory := []string{
		fmt.Sprintf("**Least memory**: %s at %.1f MB", names.Display(sum.LeastMemory.Approach), sum.LeastMemory.Value/1024),
		fmt.Sprintf("**Most memory**: %s at %.1f MB", names.Display(sum.MostMemory.Approach), sum.MostMemory.Value/1024),
		fmt.Sprintf("**Memory difference**: %s (most vs least)", formatRatio(sum.MemoryRatio)),
	}

	return []Block{
		Heading{Level: 2, Text: "Performance Insights"},
		Heading{Level: 3, Text: "Speed"},
		List{Items: speed},
		Heading{Level: 3, Text: "Memory"},
		List{Items: memory},
	}
}

func formatRatio(r aggregate.Ratio) string {
	if !r.Defined {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", r.Value)
}

func checksumSection(sum *aggregate.Summary, opts Options) []Block {
	intro := "The following table shows the MD5 checksums of the output files. All approaches should produce identical output"
	if len(opts.Divergent) > 0 {
		intro += fmt.Sprintf(" (except %s, which has known limitations)", displayList(opts.Divergent, opts.Names))
	}
	intro += "."

	t := Table{Header: []string{"Approach", "MD5 Checksum"}}
	for i := range sum.Ordered {
		r := &sum.Ordered[i]
		t.Rows = append(t.Rows, []string{opts.Names.Display(r.Approach), "`" + r.Checksum() + "`"})
	}

	var verdict Admonition
	if sum.Consistency.AllMatch {
		excluded := append([]string{opts.Baseline}, opts.Divergent...)
		verdict = Admonition{
			Kind:  "success",
			Title: "Validation Passed",
			Body: fmt.Sprintf("All approaches (except %s) produce identical output files. ✓",
				displayList(excluded, opts.Names)),
		}
	} else {
		verdict = Admonition{
			Kind:  "warning",
			Title: "MD5 Mismatch",
			Body: fmt.Sprintf("Found %d different MD5 checksums. Some approaches may be producing different output.",
				sum.Consistency.Distinct),
		}
	}

	return []Block{
		Heading{Level: 2, Text: "MD5 Checksums"},
		Paragraph{Text: intro},
		t,
		verdict,
	}
}

func interpretation(opts Options) []Block {
	base := opts.Names.Display(opts.Baseline)
	return []Block{
		Heading{Level: 2, Text: "Interpreting the Results"},
		Heading{Level: 3, Text: "Time (seconds)"},
		List{Items: []string{
			"Lower is better",
			"Includes reading input, processing, and writing output",
			base + " shows the minimum time for pure I/O",
		}},
		Heading{Level: 3, Text: "Memory (MB)"},
		List{Items: []string{
			"Lower is better for most use cases",
			"Peak resident set size (RSS) during execution",
			"High memory approaches may struggle with very large files",
		}},
		Heading{Level: 3, Text: "MD5 Checksums"},
		List{Items: []string{
			"All approaches should produce identical output",
			"Mismatches indicate bugs or different behavior",
			base + " has a different checksum since it doesn't modify the file",
		}},
		Heading{Level: 2, Text: "Notes"},
		List{Items: []string{
			"Results may vary slightly between runs due to system load",
			"Time is wall-clock time of the approach's process; memory is its peak RSS",
			"See [Approaches](approaches.md) for implementation details",
		}},
	}
}

func displayList(ids []string, names Names) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, names.Display(id))
	}
	return strings.Join(out, ", ")
}
