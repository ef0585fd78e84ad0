package scene

// LayoutKind is the layout discriminator.
type LayoutKind uint8

const (
	LayoutBox  LayoutKind = iota // Generic box
	LayoutText                   // Literal text content
)

// String returns the string representation of the LayoutKind.
func (k LayoutKind) String() string {
	switch k {
	case LayoutBox:
		return "box"
	case LayoutText:
		return "text"
	default:
		return "unknown"
	}
}

// Direction is the main axis of a flow container.
type Direction uint8

const (
	Column Direction = iota
	Row
)

// String returns the string representation of the Direction.
func (d Direction) String() string {
	if d == Row {
		return "row"
	}
	return "column"
}

// DefaultTextSize is the text size of DefaultLayoutOptions.
const DefaultTextSize = 16

// LayoutOptions describes how one node should be measured and placed.
// It is comparable so propagation results can be checked with ==.
type LayoutOptions struct {
	Kind      LayoutKind
	Text      string // For LayoutText
	TextSize  float64
	Direction Direction
	Padding   float64
	Gap       float64
	Width     float64 // 0 = auto
	Height    float64 // 0 = auto
	Hidden    bool
}

// DefaultLayoutOptions returns the options used for a root when the
// runtime supplies none.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Kind:     LayoutBox,
		TextSize: DefaultTextSize,
	}
}

// Inherit returns a box layout that keeps the inheritable properties of
// parent and resets the per-node ones.
func Inherit(parent LayoutOptions) LayoutOptions {
	return LayoutOptions{
		Kind:      LayoutBox,
		TextSize:  parent.TextSize,
		Direction: parent.Direction,
		Hidden:    parent.Hidden,
	}
}

// LayoutNode is one entry of the propagated layout tree.
type LayoutNode struct {
	Options  LayoutOptions
	Children []*LayoutNode
}

// Layout propagates options top-down starting at root.
func Layout(root Child, initial LayoutOptions) *LayoutNode {
	opts := root.LayoutOpts(initial)
	node := &LayoutNode{Options: opts}
	for child := range Children(root) {
		node.Children = append(node.Children, Layout(child, opts))
	}
	return node
}

// Count returns the number of entries in the tree.
func (l *LayoutNode) Count() int {
	if l == nil {
		return 0
	}
	n := 1
	for _, c := range l.Children {
		n += c.Count()
	}
	return n
}

// Flatten returns the options in pre-order.
func (l *LayoutNode) Flatten() []LayoutOptions {
	var out []LayoutOptions
	var visit func(*LayoutNode)
	visit = func(n *LayoutNode) {
		out = append(out, n.Options)
		for _, c := range n.Children {
			visit(c)
		}
	}
	if l != nil {
		visit(l)
	}
	return out
}

// Equal reports whether two layout trees are identical.
func (l *LayoutNode) Equal(other *LayoutNode) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.Options != other.Options || len(l.Children) != len(other.Children) {
		return false
	}
	for i := range l.Children {
		if !l.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
