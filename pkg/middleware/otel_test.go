package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/routeview/pkg/routes"
)

type recordedSpan struct {
	name   string
	status codes.Code
	errs   int
}

// recorder is a tracer provider that remembers span names and statuses.
type recorder struct {
	noop.TracerProvider

	mu    sync.Mutex
	spans []*recordedSpan
}

func (r *recorder) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{r: r}
}

type recordingTracer struct {
	noop.Tracer
	r *recorder
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	rec := &recordedSpan{name: name}
	t.r.mu.Lock()
	t.r.spans = append(t.r.spans, rec)
	t.r.mu.Unlock()
	span := &recordingSpan{rec: rec}
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	noop.Span
	rec *recordedSpan
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.rec.status = code }
func (s *recordingSpan) RecordError(error, ...trace.EventOption) { s.rec.errs++ }
func (s *recordingSpan) SetAttributes(...attribute.KeyValue)     {}

func TestOpenTelemetry(t *testing.T) {
	rec := &recorder{}
	mw := OpenTelemetry(WithTracerProvider(rec), WithTracerName("test"))

	var sawSpan bool
	ok := routes.Chain(func(ctx context.Context) (any, error) {
		_, sawSpan = trace.SpanFromContext(ctx).(*recordingSpan)
		return "x", nil
	}, &routes.Route{ID: "home", Path: "/"}, mw)
	bad := routes.Chain(func(ctx context.Context) (any, error) {
		return nil, errors.New("down")
	}, &routes.Route{ID: "user"}, mw)

	if data, err := ok(context.Background()); err != nil || data != "x" {
		t.Fatalf("ok() = %v, %v", data, err)
	}
	if _, err := bad(context.Background()); err == nil {
		t.Fatal("bad() should fail")
	}
	if !sawSpan {
		t.Error("loader context should carry the span")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(rec.spans))
	}
	if rec.spans[0].name != "routeview.loader home" || rec.spans[0].status != codes.Ok {
		t.Errorf("first span = %+v", rec.spans[0])
	}
	if rec.spans[1].status != codes.Error || rec.spans[1].errs != 1 {
		t.Errorf("second span = %+v", rec.spans[1])
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	rec := &recorder{}
	mw := OpenTelemetry(WithTracerProvider(rec), WithRouteFilter(func(r *routes.Route) bool {
		return r.ID != "health"
	}))

	load := routes.Chain(func(ctx context.Context) (any, error) { return nil, nil }, &routes.Route{ID: "health"}, mw)
	load(context.Background())

	if len(rec.spans) != 0 {
		t.Errorf("filtered loader produced %d spans", len(rec.spans))
	}
}
