package elements

import "github.com/vango-dev/scene/pkg/scene"

// ButtonBorder is the border width every button paints.
const ButtonBorder = 1

// Button is an interactible button.
type Button struct {
	Disabled   bool
	Background scene.Color

	onClick scene.Handler[Click]
	onHover scene.Handler[Hover]
}

// Kind implements scene.Named.
func (b *Button) Kind() string { return "button" }

// SetAttribute implements scene.Element. Unknown keys are ignored.
func (b *Button) SetAttribute(key string, value *string) error {
	var err error
	switch key {
	case "disabled":
		b.Disabled, err = parseFlag(b.Kind(), key, value)
	case "background":
		b.Background, err = parseColor(b.Kind(), key, value)
	}
	return err
}

// LayoutOpts implements scene.Element.
func (b *Button) LayoutOpts(parent scene.LayoutOptions) scene.LayoutOptions {
	opts := scene.Inherit(parent)
	opts.Direction = scene.Row
	return opts
}

// Paint implements scene.Element. Buttons always paint their frame.
func (b *Button) Paint() (scene.PaintDetails, bool) {
	return scene.PaintDetails{
		Background: b.Background,
		Border:     ButtonBorder,
	}, true
}

// AcceptsChild implements scene.Element.
func (b *Button) AcceptsChild(c scene.Child) bool {
	switch c.(type) {
	case scene.Text, *scene.Node[*Span]:
		return true
	}
	return false
}

// Listen implements scene.Listener. Buttons accept clicks and hovers.
func (b *Button) Listen(h scene.Binding) bool {
	switch h := h.(type) {
	case scene.Handler[Click]:
		b.onClick = h
	case scene.Handler[Hover]:
		b.onHover = h
	default:
		return false
	}
	return true
}

// Emit implements scene.Listener. A disabled button ignores clicks.
func (b *Button) Emit(ev scene.Event) bool {
	switch ev := ev.(type) {
	case Click:
		if b.Disabled || b.onClick == nil {
			return false
		}
		b.onClick(ev)
		return true
	case Hover:
		if b.onHover == nil {
			return false
		}
		b.onHover(ev)
		return true
	}
	return false
}

// Clone implements scene.Element.
func (b *Button) Clone() scene.Element {
	c := *b
	return &c
}

// Equal implements scene.Element. Handlers have no value equality, so a
// button with a handler never equals another button.
func (b *Button) Equal(other scene.Element) bool {
	o, ok := other.(*Button)
	if !ok || b.hasHandlers() || o.hasHandlers() {
		return false
	}
	return b.Disabled == o.Disabled && b.Background == o.Background
}

func (b *Button) hasHandlers() bool {
	return b.onClick != nil || b.onHover != nil
}
