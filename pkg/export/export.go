package export

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	json "github.com/goccy/go-json"

	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/inspect"
	"github.com/vango-dev/scene/pkg/runtime"
)

// Exporter writes frame reports to a Store.
type Exporter struct {
	store  Store
	prefix string
	indent bool
	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) {
		e.prefix = prefix
	}
}

// WithIndent pretty-prints reports.
func WithIndent() Option {
	return func(e *Exporter) {
		e.indent = true
	}
}

// WithLogger sets the exporter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// New creates an exporter over store.
func New(store Store, opts ...Option) *Exporter {
	e := &Exporter{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Key returns the key a frame with seq is written under.
func (e *Exporter) Key(seq uint64) string {
	name := fmt.Sprintf("frame-%d.json", seq)
	if e.prefix == "" {
		return name
	}
	return path.Join(e.prefix, name)
}

// Export writes the report of f and returns its key.
func (e *Exporter) Export(ctx context.Context, f *runtime.Frame) (string, error) {
	if f == nil {
		return "", errors.New("E140").WithDetail("no frame to export")
	}

	var (
		data []byte
		err  error
	)
	snap := inspect.NewSnapshot(f)
	if e.indent {
		data, err = json.MarshalIndent(snap, "", "  ")
	} else {
		data, err = json.Marshal(snap)
	}
	if err != nil {
		return "", errors.New("E140").Wrap(err)
	}

	key := e.Key(f.Seq)
	if err := e.store.Put(ctx, key, data); err != nil {
		return "", errors.New("E140").WithKey(key).Wrap(err)
	}
	e.logger.Info("frame exported", "seq", f.Seq, "key", key, "bytes", len(data))
	return key, nil
}
