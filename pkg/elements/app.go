package elements

import "github.com/vango-dev/scene/pkg/scene"

// App is the root of a scene and contains windows.
type App struct {
	scene.NoPaint
}

// Kind implements scene.Named.
func (a *App) Kind() string { return "app" }

// SetAttribute implements scene.Element. App has no attributes and ignores
// every key.
func (a *App) SetAttribute(string, *string) error { return nil }

// LayoutOpts implements scene.Element.
func (a *App) LayoutOpts(parent scene.LayoutOptions) scene.LayoutOptions {
	return scene.Inherit(parent)
}

// AcceptsChild implements scene.Element.
func (a *App) AcceptsChild(c scene.Child) bool {
	_, ok := c.(*scene.Node[*Window])
	return ok
}

// Clone implements scene.Element.
func (a *App) Clone() scene.Element {
	c := *a
	return &c
}

// Equal implements scene.Element.
func (a *App) Equal(other scene.Element) bool {
	_, ok := other.(*App)
	return ok
}
