package elements

import "github.com/vango-dev/scene/pkg/scene"

// View is a basic flow container.
type View struct {
	Direction  scene.Direction
	Padding    float64
	Gap        float64
	Background scene.Color
	Hidden     bool
}

// Kind implements scene.Named.
func (v *View) Kind() string { return "view" }

// SetAttribute implements scene.Element. Unknown keys are rejected.
func (v *View) SetAttribute(key string, value *string) error {
	var err error
	switch key {
	case "direction":
		v.Direction, err = parseDirection(v.Kind(), key, value)
	case "padding":
		v.Padding, err = parseSize(v.Kind(), key, value)
	case "gap":
		v.Gap, err = parseSize(v.Kind(), key, value)
	case "background":
		v.Background, err = parseColor(v.Kind(), key, value)
	case "hidden":
		v.Hidden, err = parseFlag(v.Kind(), key, value)
	default:
		return scene.UnknownAttribute(v.Kind(), key)
	}
	return err
}

// LayoutOpts implements scene.Element.
func (v *View) LayoutOpts(parent scene.LayoutOptions) scene.LayoutOptions {
	opts := scene.Inherit(parent)
	opts.Direction = v.Direction
	opts.Padding = v.Padding
	opts.Gap = v.Gap
	opts.Hidden = parent.Hidden || v.Hidden
	return opts
}

// Paint implements scene.Element.
func (v *View) Paint() (scene.PaintDetails, bool) {
	if v.Background == 0 {
		return scene.PaintDetails{}, false
	}
	return scene.PaintDetails{Background: v.Background}, true
}

// AcceptsChild implements scene.Element.
func (v *View) AcceptsChild(c scene.Child) bool {
	switch c.(type) {
	case *scene.Node[*View], *scene.Node[*Button], *scene.Node[*Span]:
		return true
	}
	return false
}

// Clone implements scene.Element.
func (v *View) Clone() scene.Element {
	c := *v
	return &c
}

// Equal implements scene.Element.
func (v *View) Equal(other scene.Element) bool {
	o, ok := other.(*View)
	return ok && *v == *o
}
