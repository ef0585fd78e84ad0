package inspect

import (
	"strings"
	"time"

	"github.com/vango-dev/scene/pkg/runtime"
	"github.com/vango-dev/scene/pkg/scene"
)

// Snapshot is the serializable view of a frame.
type Snapshot struct {
	Seq        uint64      `json:"seq"`
	At         time.Time   `json:"at"`
	DurationMS float64     `json:"durationMs"`
	Nodes      int         `json:"nodes"`
	Memo       MemoView    `json:"memo"`
	Tree       *NodeView   `json:"tree"`
	Paints     []PaintView `json:"paints"`
}

// MemoView reports the memo outcome of a pass.
type MemoView struct {
	Hits     int     `json:"hits"`
	Misses   int     `json:"misses"`
	Slots    int     `json:"slots"`
	Evicted  int     `json:"evicted"`
	HitRatio float64 `json:"hitRatio"`
}

// NodeView is one node of the scene with its propagated layout and paint.
type NodeView struct {
	Path     string      `json:"path"`
	Kind     string      `json:"kind"`
	Layout   LayoutView  `json:"layout"`
	Paint    *PaintView  `json:"paint,omitempty"`
	Children []*NodeView `json:"children,omitempty"`
}

// LayoutView is the JSON form of scene.LayoutOptions.
type LayoutView struct {
	Kind      string  `json:"kind"`
	Text      string  `json:"text,omitempty"`
	TextSize  float64 `json:"textSize"`
	Direction string  `json:"direction"`
	Padding   float64 `json:"padding,omitempty"`
	Gap       float64 `json:"gap,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Hidden    bool    `json:"hidden,omitempty"`
}

// LayoutTree is the JSON form of scene.LayoutNode.
type LayoutTree struct {
	Options  LayoutView    `json:"options"`
	Children []*LayoutTree `json:"children,omitempty"`
}

// PaintView is the JSON form of scene.PaintDetails.
type PaintView struct {
	Text       string  `json:"text,omitempty"`
	Background string  `json:"background,omitempty"`
	Foreground string  `json:"foreground,omitempty"`
	Border     float64 `json:"border,omitempty"`
}

// NewSnapshot converts f. It returns nil for a nil frame.
func NewSnapshot(f *runtime.Frame) *Snapshot {
	if f == nil {
		return nil
	}
	s := &Snapshot{
		Seq:        f.Seq,
		At:         f.At,
		DurationMS: float64(f.Duration) / float64(time.Millisecond),
		Nodes:      f.Nodes,
		Memo: MemoView{
			Hits:     f.Stats.Hits,
			Misses:   f.Stats.Misses,
			Slots:    f.Stats.Slots,
			Evicted:  f.Stats.Evicted,
			HitRatio: f.Stats.HitRatio(),
		},
		Paints: make([]PaintView, 0, len(f.Paints)),
	}
	for _, p := range f.Paints {
		s.Paints = append(s.Paints, paintView(p))
	}
	s.Tree = nodeView(f.Entries)
	return s
}

// nodeView rebuilds the tree from pre-order entries.
func nodeView(entries []scene.Entry) *NodeView {
	if len(entries) == 0 {
		return nil
	}
	var (
		root  *NodeView
		stack []*NodeView
	)
	for _, e := range entries {
		n := &NodeView{
			Path:   e.Path,
			Kind:   e.Kind,
			Layout: layoutView(e.Layout),
		}
		if e.Painted {
			p := paintView(e.Paint)
			n.Paint = &p
		}
		depth := 0
		if e.Path != "" {
			depth = strings.Count(e.Path, "/") + 1
		}
		if depth == 0 {
			root = n
			stack = append(stack[:0], n)
			continue
		}
		stack = stack[:depth]
		parent := stack[depth-1]
		parent.Children = append(parent.Children, n)
		stack = append(stack, n)
	}
	return root
}

// NewLayoutTree converts a propagated layout tree.
func NewLayoutTree(n *scene.LayoutNode) *LayoutTree {
	if n == nil {
		return nil
	}
	t := &LayoutTree{Options: layoutView(n.Options)}
	for _, c := range n.Children {
		t.Children = append(t.Children, NewLayoutTree(c))
	}
	return t
}

func layoutView(o scene.LayoutOptions) LayoutView {
	return LayoutView{
		Kind:      o.Kind.String(),
		Text:      o.Text,
		TextSize:  o.TextSize,
		Direction: o.Direction.String(),
		Padding:   o.Padding,
		Gap:       o.Gap,
		Width:     o.Width,
		Height:    o.Height,
		Hidden:    o.Hidden,
	}
}

func paintView(p scene.PaintDetails) PaintView {
	v := PaintView{Text: p.Text, Border: p.Border}
	if p.Background != 0 {
		v.Background = p.Background.String()
	}
	if p.Foreground != 0 {
		v.Foreground = p.Foreground.String()
	}
	return v
}
