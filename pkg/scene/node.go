package scene

import (
	"fmt"
	"iter"
)

// Child is the type-erased view of a node used by traversal code. Every
// node kind and Text implement it.
type Child interface {
	// Paint is typically a pass-through to Element.Paint.
	Paint() (PaintDetails, bool)

	// LayoutOpts is typically a pass-through to Element.LayoutOpts.
	LayoutOpts(parent LayoutOptions) LayoutOptions

	// ChildAt returns the child at index i in insertion order, or false if
	// i is out of range.
	ChildAt(i int) (Child, bool)

	// Equal reports structural equality.
	Equal(other Child) bool
}

// elementHolder is implemented by *Node[E] so that package code can reach
// the element without knowing E.
type elementHolder interface {
	element() Element
}

// Node is an immutable element instance together with its realized children.
// Nodes are produced by Builder.Build.
type Node[E Element] struct {
	elem     E
	children []Child
}

// Element returns a copy of the node's element state.
func (n *Node[E]) Element() E {
	return n.elem.Clone().(E)
}

func (n *Node[E]) element() Element {
	return n.elem
}

// Len returns the number of children.
func (n *Node[E]) Len() int {
	return len(n.children)
}

// Paint implements Child.
func (n *Node[E]) Paint() (PaintDetails, bool) {
	return n.elem.Paint()
}

// LayoutOpts implements Child.
func (n *Node[E]) LayoutOpts(parent LayoutOptions) LayoutOptions {
	return n.elem.LayoutOpts(parent)
}

// ChildAt implements Child.
func (n *Node[E]) ChildAt(i int) (Child, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Equal implements Child.
func (n *Node[E]) Equal(other Child) bool {
	o, ok := other.(*Node[E])
	if !ok {
		return false
	}
	if n == o {
		return true
	}
	if n == nil || o == nil {
		return false
	}
	return n.elem.Equal(o.elem) && childrenEqual(n.children, o.children)
}

// matches reports whether the node was built from the given state.
func (n *Node[E]) matches(elem E, children []Child) bool {
	return n.elem.Equal(elem) && childrenEqual(n.children, children)
}

func childrenEqual(a, b []Child) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Text is raw text content. It has no children.
type Text string

// Paint implements Child. Text always paints its literal content.
func (t Text) Paint() (PaintDetails, bool) {
	return PaintDetails{Text: string(t)}, true
}

// LayoutOpts implements Child. Text inherits the parent's text size.
func (t Text) LayoutOpts(parent LayoutOptions) LayoutOptions {
	return LayoutOptions{
		Kind:     LayoutText,
		Text:     string(t),
		TextSize: parent.TextSize,
		Hidden:   parent.Hidden,
	}
}

// ChildAt implements Child.
func (t Text) ChildAt(int) (Child, bool) {
	return nil, false
}

// Equal implements Child.
func (t Text) Equal(other Child) bool {
	o, ok := other.(Text)
	return ok && o == t
}

// Children returns a lazy sequence over the children of c. It calls ChildAt
// with increasing indices from 0 until it reports false.
func Children(c Child) iter.Seq[Child] {
	return func(yield func(Child) bool) {
		for i := 0; ; i++ {
			child, ok := c.ChildAt(i)
			if !ok || !yield(child) {
				return
			}
		}
	}
}

// Walk visits root and its descendants in pre-order. Returning false from fn
// skips the children of the visited node. The path slice is only valid for
// the duration of the call.
func Walk(root Child, fn func(path []int, c Child) bool) {
	walk(root, nil, fn)
}

func walk(c Child, path []int, fn func([]int, Child) bool) {
	if !fn(path, c) {
		return
	}
	i := 0
	for child := range Children(c) {
		walk(child, append(path, i), fn)
		i++
	}
}

// Lookup returns the descendant of root at path. An empty path is root.
func Lookup(root Child, path []int) (Child, bool) {
	c := root
	for _, i := range path {
		next, ok := c.ChildAt(i)
		if !ok {
			return nil, false
		}
		c = next
	}
	return c, true
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Child) int {
	n := 0
	Walk(root, func([]int, Child) bool {
		n++
		return true
	})
	return n
}

// KindOf returns a short name for the kind of c.
func KindOf(c Child) string {
	switch v := c.(type) {
	case Text:
		return "text"
	case elementHolder:
		if named, ok := v.element().(Named); ok {
			return named.Kind()
		}
		return fmt.Sprintf("%T", v.element())
	default:
		return fmt.Sprintf("%T", c)
	}
}
