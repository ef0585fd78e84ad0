// Package export writes frame reports to durable storage.
//
// A frame report is the JSON Snapshot of one frame, stored under
// "<prefix>/frame-<seq>.json". Reports are debugging artifacts: they
// describe a scene but cannot be loaded back into one.
//
// Two stores are provided: DirStore writes to a local directory and
// S3Store uploads to an S3 bucket.
//
//	store := export.NewDirStore("frames")
//	ex := export.New(store, export.WithPrefix("run-42"))
//	key, err := ex.Export(ctx, rt.Last())
package export
