// Package demo contains the built-in counter scene used by the CLI.
package demo

import (
	"strconv"
	"sync/atomic"

	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/scene"
)

// IncrementPath is the path of the increment button inside the counter scene.
var IncrementPath = []int{0, 1, 1}

// Counter is a window with a label, an increment button and a static footer.
type Counter struct {
	count atomic.Int64
	Title string
}

// NewCounter creates a counter scene.
func NewCounter(title string) *Counter {
	return &Counter{Title: title}
}

// Count returns the current count.
func (c *Counter) Count() int64 {
	return c.count.Load()
}

// Increment bumps the count. It is the button's click handler.
func (c *Counter) Increment() {
	c.count.Add(1)
}

// Render builds the scene for one pass.
func (c *Counter) Render(p *scene.Pass) (scene.Child, error) {
	heading, err := scene.New[elements.Span](p).
		Attr("size", "24").
		Content(c.Title).
		Build()
	if err != nil {
		return nil, err
	}

	var body *scene.Node[*elements.View]
	p.Scope("body", func() {
		label := scene.New[elements.Span](p).
			Content("Count: " + strconv.FormatInt(c.Count(), 10)).
			MustBuild()
		button := scene.New[elements.Button](p).
			Attr("background", "#3355ff").
			On(scene.Handle(func(elements.Click) { c.Increment() })).
			Content("+1").
			MustBuild()
		body = scene.New[elements.View](p).
			Attr("direction", "row").
			Attr("gap", "8").
			Child(label).
			Child(button).
			MustBuild()
	})

	footer := scene.New[elements.View](p).
		Attr("padding", "4").
		Child(scene.New[elements.Span](p).Attr("size", "10").Content("static footer").MustBuild()).
		MustBuild()

	window, err := scene.New[elements.Window](p).
		Attr("title", c.Title).
		Attr("width", "320").
		Attr("height", "200").
		Attr("background", "#ffffff").
		Child(heading).
		Child(body).
		Child(footer).
		Build()
	if err != nil {
		return nil, err
	}
	return scene.New[elements.App](p).Child(window).Build()
}
