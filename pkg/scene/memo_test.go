package scene_test

import (
	"slices"
	"testing"

	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/scene"
)

// container builds a view holding one span per text.
func container(p *scene.Pass, texts ...string) *scene.Node[*elements.View] {
	b := scene.New[elements.View](p)
	for _, s := range texts {
		b.Child(scene.New[elements.Span](p).Content(s).MustBuild())
	}
	return b.MustBuild()
}

func runPass(c *scene.Cache, fn func(p *scene.Pass)) scene.PassStats {
	p := c.Begin()
	fn(p)
	return p.End()
}

func TestMemoHitReturnsSameNode(t *testing.T) {
	cache := scene.NewCache()

	var first, second *scene.Node[*elements.View]
	runPass(cache, func(p *scene.Pass) { first = container(p, "a", "b") })
	stats := runPass(cache, func(p *scene.Pass) { second = container(p, "a", "b") })

	if first != second {
		t.Error("identical rebuild should return the stored node")
	}
	if stats.Hits != 3 || stats.Misses != 0 {
		t.Errorf("stats = %+v, want 3 hits", stats)
	}
	if stats.HitRatio() != 1 {
		t.Errorf("HitRatio() = %v", stats.HitRatio())
	}
}

func TestMemoMissOnChangedChild(t *testing.T) {
	cache := scene.NewCache()

	var first, second *scene.Node[*elements.View]
	runPass(cache, func(p *scene.Pass) { first = container(p, "a", "b") })
	stats := runPass(cache, func(p *scene.Pass) { second = container(p, "a", "c") })

	if first == second {
		t.Fatal("changed children should produce a fresh container")
	}
	a1, _ := first.ChildAt(0)
	a2, _ := second.ChildAt(0)
	if a1 != a2 {
		t.Error("unchanged first child should be reused")
	}
	b1, _ := first.ChildAt(1)
	c2, _ := second.ChildAt(1)
	if b1 == c2 {
		t.Error("changed second child should be rebuilt")
	}
	got := paintTexts(scene.Paint(second))
	if !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("Paint() = %v, want [a c]", got)
	}
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("stats = %+v, want 1 hit, 2 misses", stats)
	}
}

func TestMemoMissOnChangedAttribute(t *testing.T) {
	cache := scene.NewCache()

	build := func(p *scene.Pass, gap string) *scene.Node[*elements.View] {
		return scene.New[elements.View](p).Attr("gap", gap).MustBuild()
	}
	var first, second, third *scene.Node[*elements.View]
	runPass(cache, func(p *scene.Pass) { first = build(p, "1") })
	runPass(cache, func(p *scene.Pass) { second = build(p, "2") })
	runPass(cache, func(p *scene.Pass) { third = build(p, "2") })

	if first == second {
		t.Error("changed attribute should not reuse the stale node")
	}
	if second.Element().Gap != 2 {
		t.Errorf("Gap = %v, want 2", second.Element().Gap)
	}
	if second != third {
		t.Error("repeated state should hit the previous pass")
	}
}

func TestMemoOnlyPreviousPass(t *testing.T) {
	cache := scene.NewCache()

	var first, third *scene.Node[*elements.View]
	runPass(cache, func(p *scene.Pass) { first = container(p, "a") })
	runPass(cache, func(p *scene.Pass) { container(p, "z") })
	runPass(cache, func(p *scene.Pass) { third = container(p, "a") })

	if first == third {
		t.Error("a slot only remembers the immediately preceding pass")
	}
}

func TestMemoNilPass(t *testing.T) {
	a := container(nil, "a")
	b := container(nil, "a")
	if a == b {
		t.Error("builds without a pass should never be memoized")
	}
	if !a.Equal(b) {
		t.Error("builds without a pass should still be structurally equal")
	}
}

func TestMemoHandlersNeverReused(t *testing.T) {
	cache := scene.NewCache()

	build := func(p *scene.Pass, fn func(elements.Click)) *scene.Node[*elements.Button] {
		return scene.New[elements.Button](p).On(scene.Handle(fn)).Content("x").MustBuild()
	}
	calls := 0
	var first, second *scene.Node[*elements.Button]
	runPass(cache, func(p *scene.Pass) { first = build(p, func(elements.Click) {}) })
	runPass(cache, func(p *scene.Pass) { second = build(p, func(elements.Click) { calls++ }) })

	if first == second {
		t.Fatal("nodes carrying handlers should be rebuilt")
	}
	scene.Dispatch(second, nil, elements.Click{})
	if calls != 1 {
		t.Errorf("latest handler should run, calls = %d", calls)
	}
}

func TestMemoEviction(t *testing.T) {
	cache := scene.NewCache()

	runPass(cache, func(p *scene.Pass) { container(p, "a", "b", "c") })
	if cache.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", cache.Len())
	}
	stats := runPass(cache, func(p *scene.Pass) { container(p, "a") })
	if stats.Slots != 2 {
		t.Errorf("Slots = %d, want 2", stats.Slots)
	}
	if stats.Evicted != 2 {
		t.Errorf("Evicted = %d, want 2", stats.Evicted)
	}
}

func TestMemoScopeKeepsPositionsStable(t *testing.T) {
	cache := scene.NewCache()

	build := func(p *scene.Pass, banner bool) (footer *scene.Node[*elements.Span]) {
		if banner {
			scene.New[elements.Span](p).Content("banner").MustBuild()
		}
		p.Scope("footer", func() {
			footer = scene.New[elements.Span](p).Content("footer").MustBuild()
		})
		return footer
	}

	var first, second *scene.Node[*elements.Span]
	runPass(cache, func(p *scene.Pass) { first = build(p, false) })
	runPass(cache, func(p *scene.Pass) { second = build(p, true) })
	if first != second {
		t.Error("scoped build should keep its slot when siblings appear")
	}
}

func TestMemoKeyedBuilds(t *testing.T) {
	cache := scene.NewCache()

	build := func(p *scene.Pass, order []string) map[string]*scene.Node[*elements.Span] {
		out := make(map[string]*scene.Node[*elements.Span])
		for _, k := range order {
			out[k] = scene.New[elements.Span](p).Key(k).Content(k).MustBuild()
		}
		return out
	}

	var first, second map[string]*scene.Node[*elements.Span]
	runPass(cache, func(p *scene.Pass) { first = build(p, []string{"x", "y"}) })
	stats := runPass(cache, func(p *scene.Pass) { second = build(p, []string{"y", "x"}) })

	for _, k := range []string{"x", "y"} {
		if first[k] != second[k] {
			t.Errorf("keyed build %q should survive reordering", k)
		}
	}
	if stats.Hits != 2 {
		t.Errorf("Hits = %d, want 2", stats.Hits)
	}
}

func TestMemoDuplicateScopesAndKeys(t *testing.T) {
	cache := scene.NewCache()

	runPass(cache, func(p *scene.Pass) {
		p.Scope("row", func() { scene.New[elements.Span](p).MustBuild() })
		p.Scope("row", func() { scene.New[elements.Span](p).MustBuild() })
		scene.New[elements.Span](p).Key("k").MustBuild()
		scene.New[elements.Span](p).Key("k").MustBuild()
	})
	if cache.Len() != 4 {
		t.Errorf("Len() = %d, want 4 distinct slots; positions %v", cache.Len(), cache.Positions())
	}
}

func TestMemoKindChangeAtPosition(t *testing.T) {
	cache := scene.NewCache()

	runPass(cache, func(p *scene.Pass) { scene.New[elements.Span](p).MustBuild() })
	stats := runPass(cache, func(p *scene.Pass) { scene.New[elements.View](p).MustBuild() })
	if stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("stats = %+v, want a miss when the kind changes", stats)
	}
}

func TestCacheBeginTwicePanics(t *testing.T) {
	cache := scene.NewCache()
	p := cache.Begin()
	defer p.End()

	defer func() {
		if recover() == nil {
			t.Error("Begin() during an active pass should panic")
		}
	}()
	cache.Begin()
}

func TestPassEndIdempotent(t *testing.T) {
	cache := scene.NewCache()
	p := cache.Begin()
	container(p, "a")
	s1 := p.End()
	s2 := p.End()
	if s1 != s2 {
		t.Errorf("End() twice = %+v, %+v", s1, s2)
	}
	if s1.Seq != 1 || p.Seq() != 1 {
		t.Errorf("Seq = %d", s1.Seq)
	}

	// Builds after End are not memoized.
	if container(p, "a") == container(p, "a") {
		t.Error("builds on an ended pass should not be memoized")
	}
}

func TestCacheReset(t *testing.T) {
	cache := scene.NewCache()
	var first, second *scene.Node[*elements.View]
	runPass(cache, func(p *scene.Pass) { first = container(p, "a") })
	cache.Reset()
	runPass(cache, func(p *scene.Pass) { second = container(p, "a") })
	if first == second {
		t.Error("Reset() should drop every slot")
	}
}
