package scene

// Element is the behavioral contract of one element kind.
//
// Element is implemented by a pointer to a state struct. The zero value of
// the struct is the kind's empty state.
type Element interface {
	// SetAttribute decodes an attribute onto the element. A nil value unsets
	// the attribute, which is distinct from setting it to "".
	SetAttribute(key string, value *string) error

	// LayoutOpts derives this element's layout parameters from its parent's.
	// It must be pure and deterministic.
	LayoutOpts(parent LayoutOptions) LayoutOptions

	// Paint describes the element's own visual contribution. Return false to
	// only affect layout.
	Paint() (PaintDetails, bool)

	// AcceptsChild reports whether c belongs to the closed set of kinds this
	// element may parent.
	AcceptsChild(c Child) bool

	// Clone returns a deep copy of the element state.
	Clone() Element

	// Equal reports value equality over all attribute fields.
	Equal(other Element) bool
}

// NoPaint can be embedded by layout-only kinds.
type NoPaint struct{}

// Paint implements Element.
func (NoPaint) Paint() (PaintDetails, bool) {
	return PaintDetails{}, false
}

// Named is implemented by elements that report a kind name for inspection.
type Named interface {
	Kind() string
}

// Event is implemented by every event kind that can be listened to.
// Event kinds are value types.
type Event interface {
	EventKind() string
}

// Handler is a listener for one event kind.
type Handler[Ev Event] func(Ev)

// Handle wraps fn so it can be passed to Builder.On.
func Handle[Ev Event](fn func(Ev)) Handler[Ev] {
	return Handler[Ev](fn)
}

// EventKind returns the kind of event this handler listens to.
func (h Handler[Ev]) EventKind() string {
	var ev Ev
	return ev.EventKind()
}

// Binding is a handler ready to be attached by Builder.On. Every Handler
// is a Binding.
type Binding interface {
	EventKind() string
}

// Listener is implemented by element kinds that accept events. The set of
// accepted kinds is closed: Listen type-switches over the Handler types the
// element supports and reports false for anything else.
//
//	func (b *Button) Listen(h scene.Binding) bool {
//	    switch h := h.(type) {
//	    case scene.Handler[Click]:
//	        b.onClick = h
//	        return true
//	    }
//	    return false
//	}
type Listener interface {
	Listen(h Binding) bool
	Emit(ev Event) bool
}

// Accepts reports whether elements of kind E accept handlers for events of
// kind Ev. It probes a default-state element and has no side effects on any
// node.
func Accepts[Ev Event, T any, E interface {
	*T
	Element
}]() bool {
	l, ok := any(E(new(T))).(Listener)
	return ok && l.Listen(Handler[Ev](func(Ev) {}))
}

// Dispatch delivers ev to the node at path. It reports whether a handler ran.
func Dispatch(root Child, path []int, ev Event) bool {
	c, ok := Lookup(root, path)
	if !ok {
		return false
	}
	holder, ok := c.(elementHolder)
	if !ok {
		return false
	}
	l, ok := holder.element().(Listener)
	if !ok {
		return false
	}
	return l.Emit(ev)
}
