// Package render exports a finished search tree as a Graphviz DOT document,
// for offline debugging. It is never on a planner's hot path: strictly an
// opt-in post-hoc inspection tool.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/tmellor/mcsearch/mstate"
	"github.com/tmellor/mcsearch/node"
)

// WriteDOT walks the subtree rooted at root and writes it to w as a
// directed Graphviz graph, one node per tree node, labeled by label(node).
func WriteDOT[P mstate.State[P], A mstate.Action[P]](w io.Writer, t *node.Tree[P, A], root node.Handle, label func(*node.Node[P, A]) string) error {
	g := gographviz.NewGraph()
	if err := g.SetName("search"); err != nil {
		return err
	}
	if err := g.SetDir(true); err != nil {
		return err
	}

	var walk func(h node.Handle) error
	walk = func(h node.Handle) error {
		n := t.At(h)
		name := fmt.Sprintf("n%d", h)
		attrs := map[string]string{"label": strconv.Quote(label(n))}
		if err := g.AddNode("search", name, attrs); err != nil {
			return err
		}
		for _, ch := range n.Children {
			if err := walk(ch); err != nil {
				return err
			}
			childName := fmt.Sprintf("n%d", ch)
			if err := g.AddEdge(name, childName, true, nil); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	_, err := io.WriteString(w, g.String())
	return err
}

// DefaultLabel renders a node's visit count and mean score, a reasonable
// default for callers that don't need a domain-specific label.
func DefaultLabel[P mstate.State[P], A mstate.Action[P]](n *node.Node[P, A]) string {
	mean := 0.0
	if n.Visits > 0 {
		mean = n.Score / float64(n.Visits)
	}
	return fmt.Sprintf("visits=%d mean=%.3f", n.Visits, mean)
}
