package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Trace exporters accepted by --trace-exporter.
const (
	TraceExporterStdout = "stdout"
	TraceExporterGlobal = "global"
)

// setupTracing returns the tracer provider for loader spans and a shutdown
// func that flushes it. The stdout exporter writes spans to w. The global
// exporter uses whatever provider was installed with otel.SetTracerProvider.
func setupTracing(exporter string, w io.Writer) (trace.TracerProvider, func(context.Context) error, error) {
	switch exporter {
	case TraceExporterGlobal:
		return otel.GetTracerProvider(), func(context.Context) error { return nil }, nil

	case TraceExporterStdout, "":
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, nil, fmt.Errorf("create exporter: %w", err)
		}
		res := resource.NewWithAttributes(
			"",
			attribute.String("service.name", "routeview"),
			attribute.String("service.version", version),
		)
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		return tp, tp.Shutdown, nil

	default:
		return nil, nil, fmt.Errorf("unknown trace exporter %q (want %s or %s)",
			exporter, TraceExporterStdout, TraceExporterGlobal)
	}
}
