// Package report builds the benchmark results document and renders it as
// markdown with mermaid charts.
package report

import "slices"

// Document is a rendered-independent report: a title followed by blocks.
type Document struct {
	Title  string
	Blocks []Block
}

// Block is one element of a Document.
type Block interface {
	block()
}

// Heading is a section heading; Level 2 is a top-level section.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of text.
type Paragraph struct {
	Text string
}

// Admonition is a callout box ("info", "success", "warning").
type Admonition struct {
	Kind  string
	Title string
	Body  string
}

// List is a bulleted list.
type List struct {
	Items []string
}

// Table is a pipe-delimited table.
type Table struct {
	Header []string
	Rows   [][]string
}

// Chart is a single-series bar chart.
type Chart struct {
	Title  string
	YLabel string
	Labels []string
	Values []float64
	// Decimals is the number of decimals printed per value; -1 prints the
	// shortest exact representation.
	Decimals int
}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (Admonition) block() {}
func (List) block()       {}
func (Table) block()      {}
func (Chart) block()      {}

// AxisHeadroom scales the largest value to the y-axis maximum.
const AxisHeadroom = 1.1

// AxisMax returns the upper bound of the y-axis.
func (c Chart) AxisMax() float64 {
	if len(c.Values) == 0 {
		return 0
	}
	return slices.Max(c.Values) * AxisHeadroom
}

func (d *Document) add(b ...Block) {
	d.Blocks = append(d.Blocks, b...)
}

func (d *Document) section(text string) {
	d.add(Heading{Level: 2, Text: text})
}
