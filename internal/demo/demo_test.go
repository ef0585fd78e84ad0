package demo

import (
	"testing"

	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/scene"
)

func TestCounterRender(t *testing.T) {
	c := NewCounter("Demo")
	root, err := c.Render(nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	label, ok := scene.Lookup(root, []int{0, 1, 0, 0})
	if !ok || !label.Equal(scene.Text("Count: 0")) {
		t.Errorf("label = %v", label)
	}
	if !scene.Dispatch(root, IncrementPath, elements.Click{}) {
		t.Fatal("increment button should handle clicks")
	}
	if c.Count() != 1 {
		t.Errorf("Count() = %d, want 1", c.Count())
	}
}

func TestCounterMemo(t *testing.T) {
	c := NewCounter("Demo")
	cache := scene.NewCache()

	p := cache.Begin()
	if _, err := c.Render(p); err != nil {
		t.Fatal(err)
	}
	first := p.End()
	if first.Misses != 8 || first.Slots != 8 {
		t.Errorf("first pass = %+v, want 8 misses and 8 slots", first)
	}

	p = cache.Begin()
	if _, err := c.Render(p); err != nil {
		t.Fatal(err)
	}
	second := p.End()
	if second.Hits != 4 || second.Misses != 4 {
		t.Errorf("second pass = %+v, want 4 hits and 4 misses", second)
	}

	c.Increment()
	p = cache.Begin()
	if _, err := c.Render(p); err != nil {
		t.Fatal(err)
	}
	third := p.End()
	if third.Hits != 3 || third.Misses != 5 {
		t.Errorf("third pass = %+v, want 3 hits and 5 misses", third)
	}
}
