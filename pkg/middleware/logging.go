package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/scene/pkg/runtime"
)

// Logging creates middleware that writes one log line per pass. Successful
// passes log at debug level, failed passes at warn.
func Logging(logger *slog.Logger) runtime.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, info *runtime.PassInfo, next func(context.Context) error) error {
		start := time.Now()
		err := next(ctx)
		if err != nil {
			logger.WarnContext(ctx, "pass failed",
				"seq", info.Seq,
				"duration", time.Since(start),
				"error", err)
			return err
		}
		f := info.Frame
		if f == nil {
			return nil
		}
		logger.DebugContext(ctx, "pass",
			"seq", info.Seq,
			"nodes", f.Nodes,
			"hits", f.Stats.Hits,
			"misses", f.Stats.Misses,
			"evicted", f.Stats.Evicted,
			"hit_ratio", f.Stats.HitRatio(),
			"duration", time.Since(start))
		return nil
	}
}
