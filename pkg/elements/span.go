package elements

import "github.com/vango-dev/scene/pkg/scene"

// Span is a container for inline text.
type Span struct {
	scene.NoPaint

	// TextSize overrides the inherited text size when non-zero.
	TextSize float64
}

// Kind implements scene.Named.
func (s *Span) Kind() string { return "span" }

// SetAttribute implements scene.Element. Unknown keys are ignored.
func (s *Span) SetAttribute(key string, value *string) error {
	if key != "size" {
		return nil
	}
	size, err := parseSize(s.Kind(), key, value)
	if err != nil {
		return err
	}
	s.TextSize = size
	return nil
}

// LayoutOpts implements scene.Element.
func (s *Span) LayoutOpts(parent scene.LayoutOptions) scene.LayoutOptions {
	opts := scene.Inherit(parent)
	opts.Direction = scene.Row
	if s.TextSize > 0 {
		opts.TextSize = s.TextSize
	}
	return opts
}

// AcceptsChild implements scene.Element. Spans hold text only.
func (s *Span) AcceptsChild(c scene.Child) bool {
	_, ok := c.(scene.Text)
	return ok
}

// Clone implements scene.Element.
func (s *Span) Clone() scene.Element {
	c := *s
	return &c
}

// Equal implements scene.Element.
func (s *Span) Equal(other scene.Element) bool {
	o, ok := other.(*Span)
	return ok && *s == *o
}
