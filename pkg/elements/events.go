package elements

// Click is delivered when a button is activated.
type Click struct {
	X, Y float64
}

// EventKind implements scene.Event.
func (Click) EventKind() string { return "click" }

// Hover is delivered when the pointer enters or leaves a button.
type Hover struct {
	Entered bool
}

// EventKind implements scene.Event.
func (Hover) EventKind() string { return "hover" }

// KeyPress is delivered to the focused window.
type KeyPress struct {
	Key string
}

// EventKind implements scene.Event.
func (KeyPress) EventKind() string { return "keypress" }

