// Package runtime drives repeated construction passes over one scene cache.
//
// Each call to Frame begins a pass, runs the render function, ends the pass
// and derives the layout tree and paint sequence of the resulting root. The
// runtime serializes passes, so a cache slot is never read and written by
// two passes at once.
//
//	rt := runtime.New(runtime.WithLogger(logger))
//	frame, err := rt.Frame(ctx, func(p *scene.Pass) (scene.Child, error) {
//	    return scene.New[elements.App](p).Child(window(p)).Build()
//	})
package runtime
