// Package middleware provides pass middleware for the scene runtime.
//
// Middleware wraps every construction pass:
//
//	rt := runtime.New(
//	    runtime.WithMiddleware(
//	        middleware.Logging(logger),
//	        middleware.Prometheus(middleware.WithNamespace("myapp")),
//	        middleware.OpenTelemetry(),
//	    ),
//	)
//
// Prometheus records memo hits and misses, pass outcomes and durations.
// OpenTelemetry opens one span per pass. Logging writes one structured log
// line per pass.
package middleware
