package elements

import "github.com/vango-dev/scene/pkg/scene"

// Window is a top level window.
type Window struct {
	Title      string
	Width      float64
	Height     float64
	Background scene.Color

	onKey scene.Handler[KeyPress]
}

// Kind implements scene.Named.
func (w *Window) Kind() string { return "window" }

// SetAttribute implements scene.Element. Unknown keys are rejected.
func (w *Window) SetAttribute(key string, value *string) error {
	var err error
	switch key {
	case "title":
		w.Title = stringValue(value)
	case "width":
		w.Width, err = parseSize(w.Kind(), key, value)
	case "height":
		w.Height, err = parseSize(w.Kind(), key, value)
	case "background":
		w.Background, err = parseColor(w.Kind(), key, value)
	default:
		return scene.UnknownAttribute(w.Kind(), key)
	}
	return err
}

// LayoutOpts implements scene.Element.
func (w *Window) LayoutOpts(parent scene.LayoutOptions) scene.LayoutOptions {
	opts := scene.Inherit(parent)
	opts.Direction = scene.Column
	opts.Width = w.Width
	opts.Height = w.Height
	return opts
}

// Paint implements scene.Element. A window paints its background if set.
func (w *Window) Paint() (scene.PaintDetails, bool) {
	if w.Background == 0 {
		return scene.PaintDetails{}, false
	}
	return scene.PaintDetails{Background: w.Background}, true
}

// AcceptsChild implements scene.Element.
func (w *Window) AcceptsChild(c scene.Child) bool {
	switch c.(type) {
	case *scene.Node[*View], *scene.Node[*Button], *scene.Node[*Span]:
		return true
	}
	return false
}

// Listen implements scene.Listener. Windows accept key presses.
func (w *Window) Listen(h scene.Binding) bool {
	if h, ok := h.(scene.Handler[KeyPress]); ok {
		w.onKey = h
		return true
	}
	return false
}

// Emit implements scene.Listener.
func (w *Window) Emit(ev scene.Event) bool {
	if ev, ok := ev.(KeyPress); ok && w.onKey != nil {
		w.onKey(ev)
		return true
	}
	return false
}

// Clone implements scene.Element.
func (w *Window) Clone() scene.Element {
	c := *w
	return &c
}

// Equal implements scene.Element. Handlers have no value equality, so a
// window with a handler never equals another window.
func (w *Window) Equal(other scene.Element) bool {
	o, ok := other.(*Window)
	if !ok || w.onKey != nil || o.onKey != nil {
		return false
	}
	return w.Title == o.Title &&
		w.Width == o.Width &&
		w.Height == o.Height &&
		w.Background == o.Background
}
