package doctree

// WalkStatus controls the traversal of Walk.
type WalkStatus int

const (
	WalkContinue WalkStatus = iota
	// WalkSkipChildren skips the children of the node just entered.
	WalkSkipChildren
	WalkStop
)

// Walker is called for every node, once entering and once leaving.
type Walker func(n *Node, entering bool) (WalkStatus, error)

// Walk traverses n depth first.
func Walk(n *Node, walker Walker) error {
	_, err := walk(n, walker)
	return err
}

func walk(n *Node, walker Walker) (WalkStatus, error) {
	status, err := walker(n, true)
	if err != nil || status == WalkStop {
		return WalkStop, err
	}
	if status != WalkSkipChildren {
		for _, c := range n.Children {
			if s, err := walk(c, walker); err != nil || s == WalkStop {
				return WalkStop, err
			}
		}
	}
	if status, err := walker(n, false); err != nil || status == WalkStop {
		return WalkStop, err
	}
	return WalkContinue, nil
}

// Find returns every node of kind under n (n included), in document order.
func Find(n *Node, kind Kind) []*Node {
	var out []*Node
	_ = Walk(n, func(c *Node, entering bool) (WalkStatus, error) {
		if entering && c.Kind == kind {
			out = append(out, c)
		}
		return WalkContinue, nil
	})
	return out
}
