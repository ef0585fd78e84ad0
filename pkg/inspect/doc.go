// Package inspect serves a live view of a scene runtime over HTTP.
//
// The inspector exposes the most recent frame as JSON, streams every new
// frame to WebSocket clients, and accepts synthetic events so a scene can
// be driven without a display backend.
//
// # Routes
//
//	GET  /healthz        liveness probe
//	GET  /frame          latest frame as a Snapshot
//	GET  /frame/layout   latest propagated layout tree
//	GET  /frame/paint    latest paint sequence
//	GET  /stats          runtime statistics
//	GET  /metrics        Prometheus exposition
//	GET  /ws             WebSocket stream of Snapshots
//	POST /dispatch       deliver an event to a node
//
// # Usage
//
//	srv := inspect.New(rt, inspect.WithLogger(logger))
//	defer srv.Close()
//	err := srv.ListenAndServe(ctx, "localhost:7070")
package inspect
