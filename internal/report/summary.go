package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/inodb/vcfid-bench/internal/results"
)

var (
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryName  = lipgloss.NewStyle().Width(30)
	summaryRule  = strings.Repeat("=", 60)
)

// WriteSummary prints one line per approach: name, seconds and MB.
func WriteSummary(w io.Writer, ordered []results.Record, names Names) {
	fmt.Fprintf(w, "\n%s\n", summaryRule)
	fmt.Fprintln(w, summaryTitle.Render("BENCHMARK SUMMARY"))
	fmt.Fprintln(w, summaryRule)
	for i := range ordered {
		r := &ordered[i]
		fmt.Fprintf(w, "%s %6.3fs  %6.1fMB\n", summaryName.Render(names.Display(r.Approach)), r.Time(), r.MemoryMB())
	}
	fmt.Fprintln(w, summaryRule)
}
