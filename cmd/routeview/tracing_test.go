package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/vango-dev/routeview/pkg/middleware"
	"github.com/vango-dev/routeview/pkg/routes"
)

func TestSetupTracingStdout(t *testing.T) {
	var out bytes.Buffer
	tp, shutdown, err := setupTracing(TraceExporterStdout, &out)
	if err != nil {
		t.Fatal(err)
	}

	load := routes.Chain(func(ctx context.Context) (any, error) {
		return "ok", nil
	}, &routes.Route{ID: "user", Path: "users/:id"}, middleware.OpenTelemetry(middleware.WithTracerProvider(tp)))
	if _, err := load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.Contains(got, "routeview.loader user") {
		t.Errorf("exported spans do not mention the route:\n%s", got)
	}
}

func TestSetupTracingGlobal(t *testing.T) {
	tp, shutdown, err := setupTracing(TraceExporterGlobal, nil)
	if err != nil {
		t.Fatal(err)
	}
	if tp != otel.GetTracerProvider() {
		t.Error("global exporter should use the installed provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestSetupTracingUnknown(t *testing.T) {
	if _, _, err := setupTracing("zipkin", nil); err == nil {
		t.Error("unknown exporter should fail")
	}
}
