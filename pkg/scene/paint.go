package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBBAA value. The zero Color means "none".
type Color uint32

// RGBA returns the color components.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// String formats the color as #rrggbbaa.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return Color(v), nil
}

// PaintDetails describes one node's own visual contribution.
type PaintDetails struct {
	Text       string
	Background Color
	Foreground Color
	Border     float64
}

// Paint collects paint details in pre-order. Nodes without a contribution
// are skipped. Visibility is not applied; use Collect and Visible for the
// sequence a backend should draw.
func Paint(root Child) []PaintDetails {
	var out []PaintDetails
	Walk(root, func(_ []int, c Child) bool {
		if pd, ok := c.Paint(); ok {
			out = append(out, pd)
		}
		return true
	})
	return out
}

// Entry pairs one node's layout parameters with its optional paint details.
type Entry struct {
	Path    string
	Kind    string
	Layout  LayoutOptions
	Paint   PaintDetails
	Painted bool
}

// Collect runs layout propagation and paint collection in a single pre-order
// walk and returns one Entry per node. A node whose propagated layout is
// hidden is never painted, so a hidden container hides its whole subtree.
func Collect(root Child, initial LayoutOptions) []Entry {
	var out []Entry
	var visit func(c Child, parent LayoutOptions, path []int)
	visit = func(c Child, parent LayoutOptions, path []int) {
		opts := c.LayoutOpts(parent)
		pd, painted := c.Paint()
		if opts.Hidden {
			pd, painted = PaintDetails{}, false
		}
		out = append(out, Entry{
			Path:    FormatPath(path),
			Kind:    KindOf(c),
			Layout:  opts,
			Paint:   pd,
			Painted: painted,
		})
		i := 0
		for child := range Children(c) {
			visit(child, opts, append(path, i))
			i++
		}
	}
	visit(root, initial, nil)
	return out
}

// Visible returns the paint details of the painted entries, in order.
func Visible(entries []Entry) []PaintDetails {
	var out []PaintDetails
	for _, e := range entries {
		if e.Painted {
			out = append(out, e.Paint)
		}
	}
	return out
}

// FormatPath renders a child path such as [0 2] as "0/2". The root is "".
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "/")
}

// ParsePath is the inverse of FormatPath.
func ParsePath(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	path := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid path segment %q", p)
		}
		path[i] = n
	}
	return path, nil
}
