package table

import "github.com/dgallion1/tabsync/internal/adf"

// Build encodes the table back into tree form: one header row of header
// cells followed by data rows of data cells, each cell wrapping a single
// paragraph of plain text. Extract on the result yields the table unchanged.
func Build(t *Table) *adf.Node {
	rows := make([]*adf.Node, 0, len(t.Rows)+1)
	rows = append(rows, buildRow(t.Headers, adf.TypeTableHeader))
	for _, cells := range t.Rows {
		rows = append(rows, buildRow(cells, adf.TypeTableCell))
	}
	return adf.NewTable(rows...)
}

func buildRow(cells []string, cellType string) *adf.Node {
	nodes := make([]*adf.Node, 0, len(cells))
	for _, text := range cells {
		para := adf.NewParagraph()
		if text != "" {
			para = adf.NewParagraph(adf.NewText(text))
		}
		nodes = append(nodes, adf.NewCell(cellType, para))
	}
	return adf.NewTableRow(nodes...)
}
