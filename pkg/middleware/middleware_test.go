package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/scene/pkg/elements"
	"github.com/vango-dev/scene/pkg/runtime"
	"github.com/vango-dev/scene/pkg/scene"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func render(texts ...string) runtime.RenderFunc {
	return func(p *scene.Pass) (scene.Child, error) {
		b := scene.New[elements.View](p)
		for _, s := range texts {
			b.Child(scene.New[elements.Span](p).Content(s).MustBuild())
		}
		return b.Build()
	}
}

func failing(p *scene.Pass) (scene.Child, error) {
	return scene.New[elements.View](p).Attr("bogus", "x").Build()
}

func TestPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	rt := runtime.New(
		runtime.WithLogger(quietLogger()),
		runtime.WithMiddleware(Prometheus(WithRegistry(reg), WithNamespace("test"))),
	)
	ctx := context.Background()

	rt.Frame(ctx, render("a", "b"))
	rt.Frame(ctx, render("a", "b"))
	rt.Frame(ctx, failing)

	if got := gauge(t, reg, "test_memo_hits_total"); got != 3 {
		t.Errorf("memo hits = %v, want 3", got)
	}
	if got := gauge(t, reg, "test_memo_misses_total"); got != 3 {
		t.Errorf("memo misses = %v, want 3", got)
	}
	if got := gauge(t, reg, "test_scene_nodes"); got != 5 {
		t.Errorf("scene nodes = %v, want 5", got)
	}

	count, err := testutil.GatherAndCount(reg, "test_passes_total")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("passes_total series = %d, want 2 (success and construction_error)", count)
	}
	expected := `
# HELP test_passes_total Total number of construction passes by outcome
# TYPE test_passes_total counter
test_passes_total{status="construction_error"} 1
test_passes_total{status="success"} 2
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_passes_total"); err != nil {
		t.Error(err)
	}
}

// gauge returns the value of the single-series counter or gauge name.
func gauge(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() != name || len(mf.GetMetric()) != 1 {
			continue
		}
		m := mf.GetMetric()[0]
		if c := m.GetCounter(); c != nil {
			return c.GetValue()
		}
		return m.GetGauge().GetValue()
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestPassStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{context.Canceled, "cancelled"},
		{errors.New("x"), "error"},
		{scene.ErrUnknownAttribute, "construction_error"},
	}
	for _, tt := range tests {
		if got := passStatus(tt.err); got != tt.want {
			t.Errorf("passStatus(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

type recordingProvider struct {
	noop.TracerProvider
	started []string
}

func (p *recordingProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{Tracer: p.TracerProvider.Tracer(name), p: p}
}

type recordingTracer struct {
	trace.Tracer
	p *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	t.p.started = append(t.p.started, name)
	return t.Tracer.Start(ctx, name, opts...)
}

func TestOpenTelemetry(t *testing.T) {
	tp := &recordingProvider{}
	extracted := 0
	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithAttributeExtractor(func(info *runtime.PassInfo) []attribute.KeyValue {
			extracted++
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	)
	rt := runtime.New(runtime.WithLogger(quietLogger()), runtime.WithMiddleware(mw))

	if _, err := rt.Frame(context.Background(), render("a")); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
	if _, err := rt.Frame(context.Background(), failing); !errors.Is(err, scene.ErrUnknownAttribute) {
		t.Errorf("error should propagate through the span, got %v", err)
	}
	if len(tp.started) != 2 || tp.started[0] != "scene.pass" {
		t.Errorf("spans = %v", tp.started)
	}
	if extracted != 1 {
		t.Errorf("extractor called %d times, want 1 (success only)", extracted)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tp := &recordingProvider{}
	mw := OpenTelemetry(
		WithTracerProvider(tp),
		WithPassFilter(func(info *runtime.PassInfo) bool { return info.Seq%2 == 0 }),
	)
	rt := runtime.New(runtime.WithLogger(quietLogger()), runtime.WithMiddleware(mw))
	for i := 0; i < 4; i++ {
		rt.Frame(context.Background(), render("a"))
	}
	if len(tp.started) != 2 {
		t.Errorf("traced %d passes, want 2", len(tp.started))
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rt := runtime.New(runtime.WithLogger(quietLogger()), runtime.WithMiddleware(Logging(logger)))

	rt.Frame(context.Background(), render("a"))
	rt.Frame(context.Background(), failing)

	out := buf.String()
	if !strings.Contains(out, "msg=pass ") || !strings.Contains(out, "nodes=3") {
		t.Errorf("missing success line:\n%s", out)
	}
	if !strings.Contains(out, `msg="pass failed"`) || !strings.Contains(out, "E003") {
		t.Errorf("missing failure line:\n%s", out)
	}
}
