// Package adf models the JSON document trees used by the issue tracker
// for rich-text descriptions.
package adf

// Node types this tool understands. Anything else is carried through opaquely.
const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeText        = "text"
	TypeTable       = "table"
	TypeTableRow    = "tableRow"
	TypeTableHeader = "tableHeader"
	TypeTableCell   = "tableCell"
)

// Node is a single node of a decoded document tree.
type Node struct {
	Type    string
	Text    string
	Attrs   map[string]any
	Content []*Node

	// extra holds mapping keys we don't model (marks, version, ...) so
	// Encode can emit them unchanged.
	extra map[string]any
	// raw preserves values that were not mappings or sequences at all.
	raw   any
	isRaw bool
	// hasContent records whether the source mapping carried a "content"
	// list, so an empty list survives a round trip.
	hasContent bool
	// fromSeq marks nodes decoded from a bare sequence, which must encode
	// back to a sequence rather than a mapping.
	fromSeq bool
}

// Decode converts a raw JSON-shaped value into a Node. It never fails:
// unrecognized shapes become opaque nodes that Encode returns verbatim.
// Decode(nil) returns nil.
func Decode(v any) *Node {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]any:
		n := &Node{}
		for key, raw := range val {
			switch key {
			case "type":
				if s, ok := raw.(string); ok {
					n.Type = s
					continue
				}
			case "text":
				if s, ok := raw.(string); ok {
					n.Text = s
					continue
				}
			case "attrs":
				if m, ok := raw.(map[string]any); ok {
					n.Attrs = m
					continue
				}
			case "content":
				if items, ok := raw.([]any); ok {
					n.hasContent = true
					n.Content = make([]*Node, 0, len(items))
					for _, item := range items {
						n.Content = append(n.Content, Decode(item))
					}
					continue
				}
			}
			n.putExtra(key, raw)
		}
		return n
	case []any:
		n := &Node{hasContent: true, fromSeq: true, Content: make([]*Node, 0, len(val))}
		for _, item := range val {
			n.Content = append(n.Content, Decode(item))
		}
		return n
	default:
		return &Node{raw: v, isRaw: true}
	}
}

// Encode converts the node back into a raw JSON-shaped value. Opaque nodes
// and unmodeled mapping keys come back unchanged.
func (n *Node) Encode() any {
	if n == nil {
		return nil
	}
	if n.isRaw {
		return n.raw
	}
	var items []any
	if n.hasContent {
		items = make([]any, len(n.Content))
		for i, c := range n.Content {
			items[i] = c.Encode()
		}
	}
	if n.fromSeq {
		return items
	}
	m := make(map[string]any, len(n.extra)+4)
	for k, v := range n.extra {
		m[k] = v
	}
	if n.Type != "" {
		m["type"] = n.Type
	}
	if n.Type == TypeText || n.Text != "" {
		m["text"] = n.Text
	}
	if n.Attrs != nil {
		m["attrs"] = n.Attrs
	}
	if n.hasContent {
		m["content"] = items
	}
	return m
}

func (n *Node) putExtra(key string, v any) {
	if n.extra == nil {
		n.extra = make(map[string]any)
	}
	n.extra[key] = v
}

// composite reports whether the node is a real tree node, as opposed to an
// opaque scalar carried through from the source document.
func (n *Node) composite() bool {
	return n != nil && !n.isRaw
}

// IsCell reports whether the node is a table cell of either flavor.
func (n *Node) IsCell() bool {
	return n != nil && (n.Type == TypeTableHeader || n.Type == TypeTableCell)
}

func (n *Node) shallowCopy() *Node {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// NewDoc builds a document root around the given children.
func NewDoc(children ...*Node) *Node {
	return &Node{
		Type:       TypeDoc,
		Content:    children,
		hasContent: true,
		extra:      map[string]any{"version": 1},
	}
}

// NewParagraph builds a paragraph node. Zero children yields an empty
// paragraph, which is how empty table cells are encoded.
func NewParagraph(children ...*Node) *Node {
	return &Node{Type: TypeParagraph, Content: children, hasContent: true}
}

// NewText builds a text run.
func NewText(text string) *Node {
	return &Node{Type: TypeText, Text: text}
}

// NewTable builds a table node from row nodes.
func NewTable(rows ...*Node) *Node {
	return &Node{Type: TypeTable, Content: rows, hasContent: true}
}

// NewTableRow builds a row node from cell nodes.
func NewTableRow(cells ...*Node) *Node {
	return &Node{Type: TypeTableRow, Content: cells, hasContent: true}
}

// NewCell builds a header or data cell around the given content. cellType
// must be TypeTableHeader or TypeTableCell.
func NewCell(cellType string, children ...*Node) *Node {
	return &Node{Type: cellType, Content: children, hasContent: true}
}
