// Package table holds the semantic form of the component table embedded in
// an issue description, and the upsert logic that maintains it.
package table

import "fmt"

// Table is a normalized header row plus data rows. After New or Normalize,
// every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column positions in the canonical schema.
const (
	colOrder = iota
	colComponent
	colBranch
	colChangeRequest
	colExtDependency
)

// Schema returns the canonical column sequence for upsert-capable tables.
func Schema() []string {
	return []string{"Order", "Component", "Branch Name", "Change Request", "External Dependency"}
}

// New builds a normalized table. A nil headers slice means the source had
// no header row; positional placeholders (Col1, Col2, ...) are synthesized
// to the observed width.
func New(headers []string, rows [][]string) *Table {
	width := len(headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	if headers == nil {
		headers = make([]string, 0, width)
		for i := 0; i < width; i++ {
			headers = append(headers, fmt.Sprintf("Col%d", i+1))
		}
	}

	t := &Table{Headers: headers, Rows: rows}
	t.Normalize()
	return t
}

// Normalize right-pads the headers and every row with empty strings up to
// the widest observed width. Normalizing an already-normalized table is a
// no-op.
func (t *Table) Normalize() {
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	t.Headers = pad(t.Headers, width)
	for i, row := range t.Rows {
		t.Rows[i] = pad(row, width)
	}
}

func pad(cells []string, width int) []string {
	for len(cells) < width {
		cells = append(cells, "")
	}
	return cells
}

// clone returns a deep copy; Upsert never mutates its input.
func (t *Table) clone() *Table {
	c := &Table{
		Headers: append([]string(nil), t.Headers...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}
