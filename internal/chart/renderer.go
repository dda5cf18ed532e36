package chart

import (
	"sort"

	"github.com/jafarshop/sizecharts/internal/domain"
)

// Renderer turns a structured size chart into an image artifact. Rendering
// is a pluggable capability: the orchestrator only depends on this
// interface, never on a concrete drawing backend.
type Renderer interface {
	// Render produces image bytes for the chart. A nil byte slice with a nil
	// error must not be returned; rendering trouble is reported as an error
	// and treated by callers as a soft per-product failure.
	Render(chart *domain.SizeChart, product domain.Product, style StyleConfig) ([]byte, error)
}

// Table is the rectangular form of a size chart: one row per size in
// first-seen order, one column per measurement name in sorted order. Cells a
// size lacks hold the placeholder so the table never goes ragged.
type Table struct {
	Headers []string
	Rows    [][]string
}

const cellPlaceholder = "-"

// BuildTable lays out a chart as a rectangular table with a leading Size column
func BuildTable(c *domain.SizeChart) Table {
	nameSet := make(map[string]struct{})
	for _, size := range c.Sizes() {
		for name := range c.Measurements(size) {
			nameSet[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	t := Table{Headers: append([]string{"Size"}, names...)}
	for _, size := range c.Sizes() {
		row := make([]string, 0, len(t.Headers))
		row = append(row, size)
		for _, name := range names {
			value := c.Get(size, name)
			if value == "" {
				value = cellPlaceholder
			}
			row = append(row, value)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
