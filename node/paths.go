package node

import "strings"

// Child is one addressable child of a node. Segment is the path text that
// selects it from its parent: ".name", "[0]" or ["key"].
type Child struct {
	Segment string
	Node    Node
}

// Parent is implemented by nodes with addressable children.
type Parent interface {
	NodeChildren() []Child
}

// Paths lists the path of every node below root in depth first order.
// Property paths drop the leading dot, so the result can be used as a
// command prefix directly.
func Paths(root Node) []string {
	var out []string
	Walk(root, func(path string, _ Node) {
		out = append(out, path)
	})
	return out
}

// Walk calls fn for every node below root with its path.
func Walk(root Node, fn func(path string, n Node)) {
	walk(root, "", func(path string, n Node) {
		fn(strings.TrimPrefix(path, "."), n)
	})
}

func walk(n Node, prefix string, fn func(string, Node)) {
	p, ok := n.(Parent)
	if !ok {
		return
	}
	for _, c := range p.NodeChildren() {
		path := prefix + c.Segment
		fn(path, c.Node)
		walk(c.Node, path, fn)
	}
}
