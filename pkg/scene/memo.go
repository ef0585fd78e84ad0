package scene

import (
	"slices"
	"strconv"
)

// Cache holds the last node built at each tree position. It outlives
// individual passes; each slot is read and conditionally overwritten once
// per pass.
//
// A Cache is not safe for concurrent passes. Callers serialize Begin/End.
type Cache struct {
	slots  map[string]*slot
	seq    uint64
	active bool
}

type slot struct {
	node Child
	seen uint64
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{slots: make(map[string]*slot)}
}

// Len returns the number of occupied slots.
func (c *Cache) Len() int {
	return len(c.slots)
}

// Reset drops every slot so the next pass rebuilds everything.
func (c *Cache) Reset() {
	c.slots = make(map[string]*slot)
}

// Begin starts a construction pass. It panics if a pass is already active.
func (c *Cache) Begin() *Pass {
	if c.active {
		panic("scene: construction pass already active on cache")
	}
	c.active = true
	c.seq++
	return &Pass{
		cache:  c,
		seq:    c.seq,
		frames: []frame{{}},
	}
}

// PassStats summarizes the memo activity of one pass.
type PassStats struct {
	Seq     uint64
	Hits    int
	Misses  int
	Slots   int
	Evicted int
}

// HitRatio returns hits / (hits + misses), or 0 for an empty pass.
func (s PassStats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Pass is one construction pass over a Cache. Positions are assigned by the
// order of Build calls inside each scope, the same way hook slots are.
type Pass struct {
	cache  *Cache
	seq    uint64
	frames []frame
	stats  PassStats
	done   bool
}

type frame struct {
	prefix string
	next   int
	keys   map[string]int
}

// claim returns a unique name for key within the frame.
func (f *frame) claim(key string) string {
	if f.keys == nil {
		f.keys = make(map[string]int)
	}
	n := f.keys[key]
	f.keys[key] = n + 1
	if n == 0 {
		return key
	}
	return key + "~" + strconv.Itoa(n)
}

// Seq returns the pass sequence number, starting at 1.
func (p *Pass) Seq() uint64 {
	return p.seq
}

// Scope runs fn in a nested positional frame named key. Builds inside a
// scope are numbered independently of builds outside it, which keeps
// positions stable when conditional code above the scope changes.
func (p *Pass) Scope(key string, fn func()) {
	if p == nil {
		fn()
		return
	}
	top := &p.frames[len(p.frames)-1]
	name := top.claim("@" + key)
	p.frames = append(p.frames, frame{prefix: top.prefix + name + "/"})
	defer func() {
		p.frames = p.frames[:len(p.frames)-1]
	}()
	fn()
}

// position returns the slot key for the next build in the current frame.
func (p *Pass) position(key string) string {
	top := &p.frames[len(p.frames)-1]
	if key != "" {
		return top.prefix + top.claim("k:"+key)
	}
	pos := top.prefix + "#" + strconv.Itoa(top.next)
	top.next++
	return pos
}

func (p *Pass) lookup(pos string) Child {
	s, ok := p.cache.slots[pos]
	if !ok {
		return nil
	}
	s.seen = p.seq
	return s.node
}

func (p *Pass) store(pos string, node Child) {
	p.cache.slots[pos] = &slot{node: node, seen: p.seq}
}

// End finishes the pass. Slots not visited during the pass are dropped.
func (p *Pass) End() PassStats {
	if p.done {
		return p.stats
	}
	p.done = true
	c := p.cache
	for pos, s := range c.slots {
		if s.seen != p.seq {
			delete(c.slots, pos)
			p.stats.Evicted++
		}
	}
	c.active = false
	p.stats.Seq = p.seq
	p.stats.Slots = len(c.slots)
	return p.stats
}

// Positions returns the occupied slot keys in sorted order.
func (c *Cache) Positions() []string {
	out := make([]string, 0, len(c.slots))
	for pos := range c.slots {
		out = append(out, pos)
	}
	slices.Sort(out)
	return out
}
