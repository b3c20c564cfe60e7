package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/tabsync/internal/table"
)

// MarkdownParser handles Markdown files using goldmark's table extension.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader) (*table.Table, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(src))

	// First table in document order wins.
	var tbl ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == east.KindTable {
			tbl = n
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if tbl == nil {
		return nil, nil
	}

	var headers []string
	var rows [][]string
	for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(extractText(cell, src)))
		}
		if row.Kind() == east.KindTableHeader {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
	}

	return table.New(headers, rows), nil
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return buf.String()
}
