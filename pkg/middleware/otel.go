package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/scene/pkg/runtime"
)

// Default tracer name for the scene runtime.
const defaultTracerName = "scene"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "scene").
	TracerName string

	// TracerProvider overrides the global tracer provider.
	TracerProvider trace.TracerProvider

	// Filter determines which passes to trace. If nil, all passes are traced.
	Filter func(info *runtime.PassInfo) bool

	// AttributeExtractor adds custom attributes once the pass succeeded.
	AttributeExtractor func(info *runtime.PassInfo) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithPassFilter sets a filter function for passes.
func WithPassFilter(filter func(info *runtime.PassInfo) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(info *runtime.PassInfo) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every pass.
//
// The span is named "scene.pass" and carries the pass number. On success it
// also records the memo outcome and node count. The span context is passed
// to the rest of the chain through ctx.
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before starting passes.
func OpenTelemetry(opts ...OTelOption) runtime.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return func(ctx context.Context, info *runtime.PassInfo, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(info) {
			return next(ctx)
		}

		spanCtx, span := tracer.Start(ctx, "scene.pass",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attribute.Int64("scene.pass.seq", int64(info.Seq))),
		)
		defer span.End()

		err := next(spanCtx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		if f := info.Frame; f != nil {
			span.SetAttributes(
				attribute.Int("scene.nodes", f.Nodes),
				attribute.Int("scene.memo.hits", f.Stats.Hits),
				attribute.Int("scene.memo.misses", f.Stats.Misses),
				attribute.Int("scene.cache.slots", f.Stats.Slots),
			)
		}
		if config.AttributeExtractor != nil {
			span.SetAttributes(config.AttributeExtractor(info)...)
		}
		span.SetStatus(codes.Ok, "")
		return nil
	}
}
