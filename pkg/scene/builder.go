package scene

import (
	"github.com/vango-dev/scene/internal/errors"
)

// Builder accumulates one element's attributes, handlers and children and
// finalizes them into a Node. Every method applies immediately and returns
// the same builder so calls chain.
//
// The first failing call records an error; later calls become no-ops and
// Build returns the error without producing a node.
type Builder[E Element] struct {
	elem     E
	children []Child
	pass     *Pass
	key      string
	err      error
	built    bool
}

// New creates a builder for the element kind T in its default state. The
// pass may be nil, in which case Build never memoizes.
//
//	b := scene.New[elements.View](pass)
func New[T any, E interface {
	*T
	Element
}](p *Pass) *Builder[E] {
	return &Builder[E]{
		elem: E(new(T)),
		pass: p,
	}
}

// usable reports whether the builder still accepts calls.
func (b *Builder[E]) usable() bool {
	if b.built {
		if b.err == nil {
			b.err = errors.New("E004").WithKind(kindName(b.elem))
		}
		return false
	}
	return b.err == nil
}

// Attr sets an attribute on the element.
func (b *Builder[E]) Attr(key, value string) *Builder[E] {
	return b.set(key, &value)
}

// Unset clears an attribute on the element.
func (b *Builder[E]) Unset(key string) *Builder[E] {
	return b.set(key, nil)
}

func (b *Builder[E]) set(key string, value *string) *Builder[E] {
	if !b.usable() {
		return b
	}
	if err := b.elem.SetAttribute(key, value); err != nil {
		b.err = errors.FromError(err, "E005").WithKind(kindName(b.elem))
	}
	return b
}

// On registers an event handler. The element kind must accept the handler's
// event kind; otherwise the builder fails with ErrUnsupportedEvent.
//
//	b.On(scene.Handle(func(ev elements.Click) { ... }))
func (b *Builder[E]) On(h Binding) *Builder[E] {
	if !b.usable() {
		return b
	}
	l, ok := any(b.elem).(Listener)
	if h == nil || !ok || !l.Listen(h) {
		kind := ""
		if h != nil {
			kind = h.EventKind()
		}
		b.err = errors.New("E001").
			WithKind(kindName(b.elem)).
			WithKey(kind)
	}
	return b
}

// Child appends a child node. The element kind must accept it; otherwise the
// builder fails with ErrUnsupportedChild.
func (b *Builder[E]) Child(c Child) *Builder[E] {
	if !b.usable() {
		return b
	}
	if c == nil || !b.elem.AcceptsChild(c) {
		name := "nil"
		if c != nil {
			name = KindOf(c)
		}
		b.err = errors.New("E002").
			WithKind(kindName(b.elem)).
			WithKey(name)
		return b
	}
	b.children = append(b.children, c)
	return b
}

// Children appends several child nodes in order.
func (b *Builder[E]) Children(cs ...Child) *Builder[E] {
	for _, c := range cs {
		b.Child(c)
	}
	return b
}

// Content appends free-floating text.
func (b *Builder[E]) Content(text string) *Builder[E] {
	return b.Child(Text(text))
}

// Key gives the build an explicit position within the current scope instead
// of its call order.
func (b *Builder[E]) Key(key string) *Builder[E] {
	if b.usable() {
		b.key = key
	}
	return b
}

// Err returns the first error recorded by the builder.
func (b *Builder[E]) Err() error {
	return b.err
}

// Build consumes the builder and returns the node. If the same position
// built a structurally equal node on the previous pass, that node is
// returned unchanged.
func (b *Builder[E]) Build() (*Node[E], error) {
	if !b.usable() {
		return nil, b.err
	}
	b.built = true

	p := b.pass
	if p == nil || p.done {
		return &Node[E]{elem: b.elem, children: b.children}, nil
	}

	pos := p.position(b.key)
	if prev, ok := p.lookup(pos).(*Node[E]); ok && prev.matches(b.elem, b.children) {
		p.stats.Hits++
		return prev, nil
	}

	node := &Node[E]{elem: b.elem, children: b.children}
	p.store(pos, node)
	p.stats.Misses++
	return node, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder[E]) MustBuild() *Node[E] {
	node, err := b.Build()
	if err != nil {
		panic(err)
	}
	return node
}
