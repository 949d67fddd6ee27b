package footprint

import (
	"fmt"
	"strings"

	"github.com/OpenTraceLab/OpenTraceFootprint/pkg/kicad/geom"
)

// Node is an element of a footprint tree: a primitive, a pad array or a
// container. Every node has at most one parent.
//
// Types outside this package may embed Base to satisfy Node, but the
// serializer only renders the node kinds defined here; anything else is
// reported as a SerializationError.
type Node interface {
	// Parent returns the owning container, or nil for a detached node.
	Parent() Node

	base() *Base
}

// Base carries the parent link shared by all nodes.
type Base struct {
	parent Node
}

// Parent returns the owning container, or nil for a detached node.
func (b *Base) Parent() Node { return b.parent }

func (b *Base) base() *Base { return b }

// Container is a node that owns an ordered list of children.
type Container interface {
	Node
	Children() []Node
	Append(nodes ...Node) error
}

// children holds the child list of a container and enforces ownership.
type children struct {
	nodes []Node
}

func (c *children) add(owner Node, nodes []Node) error {
	for _, n := range nodes {
		if n == nil {
			return &ValidationError{Kind: nodeName(owner), Reason: "cannot append nil node"}
		}
		if n.base().parent != nil {
			return &ValidationError{Kind: nodeName(n), Reason: "node already has a parent"}
		}
		for p := owner; p != nil; p = p.Parent() {
			if p == n {
				return &ValidationError{Kind: nodeName(n), Reason: "appending node would create a cycle"}
			}
		}
		n.base().parent = owner
		c.nodes = append(c.nodes, n)
	}
	return nil
}

// Group is a plain container with no transform of its own.
type Group struct {
	Base
	children
}

// NewGroup creates a group holding nodes.
func NewGroup(nodes ...Node) (*Group, error) {
	g := &Group{}
	if err := g.Append(nodes...); err != nil {
		return nil, err
	}
	return g, nil
}

// Append adds nodes at the end of the group.
func (g *Group) Append(nodes ...Node) error { return g.add(g, nodes) }

// Children returns the group's children in order.
func (g *Group) Children() []Node { return g.nodes }

// Translation shifts every descendant by Offset when the tree is walked.
// Descendants keep their own coordinates; the shift is applied on the fly,
// so nested translations add up along the path from the root.
type Translation struct {
	Base
	children
	Offset geom.Point
}

// NewTranslation creates a translation by (x, y) holding nodes.
func NewTranslation(x, y float64, nodes ...Node) (*Translation, error) {
	t := &Translation{Offset: geom.Pt(x, y)}
	if err := t.Append(nodes...); err != nil {
		return nil, err
	}
	return t, nil
}

// Append adds nodes at the end of the translation.
func (t *Translation) Append(nodes ...Node) error { return t.add(t, nodes) }

// Children returns the translation's children in order.
func (t *Translation) Children() []Node { return t.nodes }

// WalkFunc is called for every non-container node reached by Walk. offset is
// the sum of all translations between the root and n; path locates n.
type WalkFunc func(n Node, offset geom.Point, path string) error

// Walk visits the leaves of the tree rooted at n depth first, in child order.
// Pad arrays are leaves; use PadArray.Pads to expand them. Walk stops at the
// first error returned by fn.
func Walk(n Node, fn WalkFunc) error {
	return walk(n, geom.Point{}, nodeName(n), fn)
}

func walk(n Node, offset geom.Point, path string, fn WalkFunc) error {
	switch v := n.(type) {
	case *Translation:
		offset = offset.Add(v.Offset)
		return walkChildren(v.nodes, offset, path, fn)
	case *Group:
		return walkChildren(v.nodes, offset, path, fn)
	default:
		return fn(n, offset, path)
	}
}

func walkChildren(nodes []Node, offset geom.Point, path string, fn WalkFunc) error {
	for i, c := range nodes {
		p := fmt.Sprintf("%s[%d]", nodeName(c), i)
		if path != "" {
			p = path + "/" + p
		}
		if err := walk(c, offset, p, fn); err != nil {
			return err
		}
	}
	return nil
}

// nodeName returns the bare type name of n, e.g. "PolygonLine".
func nodeName(n Node) string {
	if n == nil {
		return "nil"
	}
	name := fmt.Sprintf("%T", n)
	name = strings.TrimPrefix(name, "*")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
