package table

import (
	"strings"

	"github.com/dgallion1/tabsync/internal/adf"
)

// Extract locates the first table node in the tree and decodes it into
// normalized form. The second return value is false when the tree contains
// no table.
func Extract(root *adf.Node) (*Table, bool) {
	tbl := adf.FindTable(root)
	if tbl == nil {
		return nil, false
	}
	return decodeTable(tbl), true
}

func decodeTable(tbl *adf.Node) *Table {
	var headers []string
	var rows [][]string

	first := true
	for _, row := range tbl.Content {
		if row == nil || row.Type != adf.TypeTableRow {
			continue
		}
		cells, allHeader := decodeRow(row)
		if first && allHeader && len(cells) > 0 {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
		first = false
	}

	return New(headers, rows)
}

// decodeRow extracts the trimmed text of every cell in a row node, and
// reports whether every cell is structurally marked as a header cell.
func decodeRow(row *adf.Node) ([]string, bool) {
	var cells []string
	allHeader := true
	for _, cell := range row.Content {
		if !cell.IsCell() {
			continue
		}
		if cell.Type != adf.TypeTableHeader {
			allHeader = false
		}
		cells = append(cells, strings.TrimSpace(adf.Text(cell)))
	}
	return cells, allHeader
}
