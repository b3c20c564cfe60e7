package parser

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/dgallion1/tabsync/internal/table"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader) (*table.Table, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tbl := findElement(doc, "table")
	if tbl == nil {
		return nil, nil
	}

	var headers []string
	var rows [][]string
	first := true
	for _, tr := range collectRows(tbl) {
		cells, allHeader := decodeHTMLRow(tr)
		if first && allHeader && len(cells) > 0 {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
		first = false
	}

	return table.New(headers, rows), nil
}

// collectRows gathers <tr> elements in document order, descending through
// thead/tbody/tfoot wrappers.
func collectRows(n *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "tr" {
				rows = append(rows, c)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return rows
}

func decodeHTMLRow(tr *html.Node) ([]string, bool) {
	var cells []string
	allHeader := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "th":
			cells = append(cells, textContent(c))
		case "td":
			allHeader = false
			cells = append(cells, textContent(c))
		}
	}
	return cells, allHeader
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findElement(c, tag); e != nil {
			return e
		}
	}
	return nil
}
