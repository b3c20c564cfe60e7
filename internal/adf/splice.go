package adf

// SpliceResult says how Splice placed the new table into the tree.
type SpliceResult int

const (
	SpliceReplaced SpliceResult = iota
	SpliceAppended
	SpliceSynthesized
)

func (r SpliceResult) String() string {
	switch r {
	case SpliceReplaced:
		return "replaced"
	case SpliceAppended:
		return "appended"
	case SpliceSynthesized:
		return "synthesized"
	}
	return "unknown"
}

// Splice returns a tree in which the first table node of root has been
// replaced by tbl. If root has no table, tbl is appended to its top-level
// content list. If root is absent, opaque, or has no usable content list, a
// fresh document root is synthesized. Root is never mutated: the returned
// tree shares every untouched subtree and copies only the spine down to the
// replaced node.
func Splice(root, tbl *Node) (*Node, SpliceResult) {
	if !root.composite() {
		return NewDoc(tbl), SpliceSynthesized
	}
	if newRoot, ok := replaceFirstTable(root, tbl); ok {
		return newRoot, SpliceReplaced
	}
	if root.hasContent {
		clone := root.shallowCopy()
		clone.Content = make([]*Node, 0, len(root.Content)+1)
		clone.Content = append(clone.Content, root.Content...)
		clone.Content = append(clone.Content, tbl)
		return clone, SpliceAppended
	}
	return NewDoc(root, tbl), SpliceSynthesized
}

func replaceFirstTable(n, tbl *Node) (*Node, bool) {
	if !n.composite() {
		return n, false
	}
	if n.Type == TypeTable {
		return tbl, true
	}
	for i, c := range n.Content {
		repl, ok := replaceFirstTable(c, tbl)
		if !ok {
			continue
		}
		clone := n.shallowCopy()
		clone.Content = make([]*Node, len(n.Content))
		copy(clone.Content, n.Content)
		clone.Content[i] = repl
		return clone, true
	}
	return n, false
}
