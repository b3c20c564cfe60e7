package adf

import "strings"

// Text flattens a node and its descendants into plain text. Text runs
// contribute their literal text, containers concatenate their children in
// order, and anything else contributes nothing. It never fails.
func Text(n *Node) string {
	if n == nil || n.isRaw {
		return ""
	}
	if n.Type == TypeText {
		return n.Text
	}
	if len(n.Content) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, c := range n.Content {
		buf.WriteString(Text(c))
	}
	return buf.String()
}

// FindTable returns the first table node in pre-order, depth-first
// traversal, or nil if the tree contains none.
func FindTable(n *Node) *Node {
	if n == nil || n.isRaw {
		return nil
	}
	if n.Type == TypeTable {
		return n
	}
	for _, c := range n.Content {
		if t := FindTable(c); t != nil {
			return t
		}
	}
	return nil
}
