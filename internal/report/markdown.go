package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteMarkdown renders the document as markdown.
func (d *Document) WriteMarkdown(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", d.Title)
	for _, b := range d.Blocks {
		writeBlock(bw, b)
	}
	return bw.Flush()
}

// Markdown returns the rendered document.
func (d *Document) Markdown() string {
	var sb strings.Builder
	d.WriteMarkdown(&sb)
	return sb.String()
}

func writeBlock(w *bufio.Writer, b Block) {
	switch b := b.(type) {
	case Heading:
		fmt.Fprintf(w, "%s %s\n\n", strings.Repeat("#", b.Level), b.Text)
	case Paragraph:
		fmt.Fprintf(w, "%s\n\n", b.Text)
	case Admonition:
		fmt.Fprintf(w, "!!! %s %q\n    %s\n\n", b.Kind, b.Title, b.Body)
	case List:
		for _, item := range b.Items {
			fmt.Fprintf(w, "- %s\n", item)
		}
		w.WriteByte('\n')
	case Table:
		writeTable(w, b)
	case Chart:
		writeChart(w, b)
	}
}

func writeTable(w *bufio.Writer, t Table) {
	writeRow(w, t.Header)
	seps := make([]string, len(t.Header))
	for i, h := range t.Header {
		seps[i] = strings.Repeat("-", len(h))
	}
	writeRow(w, seps)
	for _, row := range t.Rows {
		writeRow(w, row)
	}
	w.WriteByte('\n')
}

func writeRow(w *bufio.Writer, cells []string) {
	w.WriteString("|")
	for _, c := range cells {
		w.WriteString(" ")
		w.WriteString(strings.ReplaceAll(c, "|", `\|`))
		w.WriteString(" |")
	}
	w.WriteByte('\n')
}

// writeChart renders a mermaid xychart-beta bar chart.
func writeChart(w *bufio.Writer, c Chart) {
	labels := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		labels[i] = `"` + strings.ReplaceAll(l, `"`, "'") + `"`
	}
	values := make([]string, len(c.Values))
	for i, v := range c.Values {
		values[i] = strconv.FormatFloat(v, 'f', c.Decimals, 64)
	}

	w.WriteString("```mermaid\n")
	w.WriteString("%%{init: {'theme':'base'}}%%\n")
	w.WriteString("xychart-beta\n")
	fmt.Fprintf(w, "    title %q\n", c.Title)
	fmt.Fprintf(w, "    x-axis [%s]\n", strings.Join(labels, ", "))
	fmt.Fprintf(w, "    y-axis %q 0 --> %s\n", c.YLabel, strconv.FormatFloat(c.AxisMax(), 'f', -1, 64))
	fmt.Fprintf(w, "    bar [%s]\n", strings.Join(values, ", "))
	w.WriteString("```\n\n")
}

// WriteFile replaces path with the rendered document. The document is
// written to a temporary file in the same directory and renamed into place.
func WriteFile(path string, d *Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.WriteMarkdown(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}
