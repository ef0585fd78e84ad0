package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/scene"
)

// RenderFunc builds the scene for one pass.
type RenderFunc func(p *scene.Pass) (scene.Child, error)

// Frame is the result of one pass. Seq is the runtime pass number seen by
// middleware; failed passes consume a number too.
type Frame struct {
	Seq      uint64
	Root     scene.Child
	Layout   *scene.LayoutNode
	Paints   []scene.PaintDetails
	Entries  []scene.Entry
	Stats    scene.PassStats
	Nodes    int
	Duration time.Duration
	At       time.Time
}

// PassInfo describes a pass to middleware. Fields other than Seq are filled
// in once next returns without error.
type PassInfo struct {
	Seq   uint64
	Frame *Frame
}

// Middleware wraps a pass.
type Middleware func(ctx context.Context, info *PassInfo, next func(context.Context) error) error

// Stats contains runtime statistics.
type Stats struct {
	Frames   uint64
	Failures uint64
	Hits     uint64
	Misses   uint64
	Slots    int
}

// Runtime owns a scene cache and drives passes over it.
type Runtime struct {
	root       scene.LayoutOptions
	logger     *slog.Logger
	middleware []Middleware

	mu    sync.Mutex // serializes passes
	cache *scene.Cache
	seq   uint64
	last  atomic.Pointer[Frame]

	subsMu sync.RWMutex
	subs   map[uint64]func(*Frame)
	subID  uint64

	frames   atomic.Uint64
	failures atomic.Uint64
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithRootOptions sets the layout options handed to the root of every frame.
func WithRootOptions(opts scene.LayoutOptions) Option {
	return func(r *Runtime) {
		r.root = opts
	}
}

// WithLogger sets the runtime logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithMiddleware appends pass middleware. The first middleware is outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Runtime) {
		r.middleware = append(r.middleware, mw...)
	}
}

// New creates a runtime with an empty cache.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		root:   scene.DefaultLayoutOptions(),
		logger: slog.Default(),
		cache:  scene.NewCache(),
		subs:   make(map[uint64]func(*Frame)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "runtime")
	return r
}

// RootOptions returns the layout options handed to the root.
func (r *Runtime) RootOptions() scene.LayoutOptions {
	return r.root
}

// Frame runs one construction pass and derives its layout and paint output.
func (r *Runtime) Frame(ctx context.Context, render RenderFunc) (*Frame, error) {
	r.mu.Lock()
	r.seq++
	info := &PassInfo{Seq: r.seq}
	err := r.chain(func(ctx context.Context) error {
		frame, err := r.pass(ctx, info.Seq, render)
		if err != nil {
			return err
		}
		info.Frame = frame
		return nil
	})(ctx, info)
	r.mu.Unlock()

	if err != nil {
		r.failures.Add(1)
		r.logger.Warn("pass failed", "seq", info.Seq, "error", err)
		return nil, err
	}

	frame := info.Frame
	r.frames.Add(1)
	r.hits.Add(uint64(frame.Stats.Hits))
	r.misses.Add(uint64(frame.Stats.Misses))
	r.last.Store(frame)
	r.logger.Debug("pass complete",
		"seq", frame.Seq,
		"nodes", frame.Nodes,
		"hits", frame.Stats.Hits,
		"misses", frame.Stats.Misses,
		"duration", frame.Duration)
	r.publish(frame)
	return frame, nil
}

// chain wraps core in the configured middleware.
func (r *Runtime) chain(core func(context.Context) error) func(context.Context, *PassInfo) error {
	h := func(ctx context.Context, _ *PassInfo) error { return core(ctx) }
	for i := len(r.middleware) - 1; i >= 0; i-- {
		mw, next := r.middleware[i], h
		h = func(ctx context.Context, info *PassInfo) error {
			return mw(ctx, info, func(ctx context.Context) error { return next(ctx, info) })
		}
	}
	return h
}

// pass runs one construction pass numbered seq. Callers hold r.mu.
func (r *Runtime) pass(ctx context.Context, seq uint64, render RenderFunc) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	p := r.cache.Begin()
	root, err := r.safeRender(render, seq, p)
	stats := p.End()
	if err != nil {
		return nil, err
	}

	entries := scene.Collect(root, r.root)
	return &Frame{
		Seq:      seq,
		Root:     root,
		Layout:   scene.Layout(root, r.root),
		Paints:   scene.Visible(entries),
		Entries:  entries,
		Stats:    stats,
		Nodes:    scene.Count(root),
		Duration: time.Since(start),
		At:       start,
	}, nil
}

// safeRender runs render with panic recovery.
func (r *Runtime) safeRender(render RenderFunc, seq uint64, p *scene.Pass) (root scene.Child, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("render panic",
				"panic", rec,
				"seq", seq,
				"stack", string(debug.Stack()))
			if e, ok := rec.(error); ok {
				err = errors.New("E021").Wrap(e)
			} else {
				err = errors.New("E021").WithDetail(fmt.Sprint(rec))
			}
		}
	}()

	root, err = render(p)
	if err != nil {
		return nil, errors.FromError(err, "E020")
	}
	if root == nil {
		return nil, errors.New("E020").WithDetail("render returned no root")
	}
	return root, nil
}

// Run runs n passes, or until ctx is cancelled. Failed passes count toward
// n. n <= 0 runs until cancellation. Render errors are logged and do not
// stop the loop.
func (r *Runtime) Run(ctx context.Context, n int, interval time.Duration, render RenderFunc) error {
	var ticker *time.Ticker
	if interval > 0 {
		ticker = time.NewTicker(interval)
		defer ticker.Stop()
	}

	for i := 0; n <= 0 || i < n; i++ {
		if i > 0 && ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if _, err := r.Frame(ctx, render); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return nil
}

// Last returns the most recent successful frame, or nil.
func (r *Runtime) Last() *Frame {
	return r.last.Load()
}

// Dispatch delivers ev to the node at path in the most recent frame.
func (r *Runtime) Dispatch(path []int, ev scene.Event) bool {
	frame := r.Last()
	if frame == nil {
		return false
	}
	handled := scene.Dispatch(frame.Root, path, ev)
	r.logger.Debug("event dispatched",
		"event", ev.EventKind(),
		"path", scene.FormatPath(path),
		"handled", handled)
	return handled
}

// Subscribe registers fn to receive every successful frame. The returned
// function unsubscribes.
func (r *Runtime) Subscribe(fn func(*Frame)) func() {
	r.subsMu.Lock()
	r.subID++
	id := r.subID
	r.subs[id] = fn
	r.subsMu.Unlock()

	return func() {
		r.subsMu.Lock()
		delete(r.subs, id)
		r.subsMu.Unlock()
	}
}

func (r *Runtime) publish(frame *Frame) {
	r.subsMu.RLock()
	subs := make([]func(*Frame), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subsMu.RUnlock()

	for _, fn := range subs {
		fn(frame)
	}
}

// Stats returns runtime statistics.
func (r *Runtime) Stats() Stats {
	r.mu.Lock()
	slots := r.cache.Len()
	r.mu.Unlock()
	return Stats{
		Frames:   r.frames.Load(),
		Failures: r.failures.Load(),
		Hits:     r.hits.Load(),
		Misses:   r.misses.Load(),
		Slots:    slots,
	}
}

// Reset drops every memoized node so the next pass rebuilds the whole scene.
func (r *Runtime) Reset() {
	r.mu.Lock()
	r.cache.Reset()
	r.mu.Unlock()
	r.logger.Info("cache reset")
}
