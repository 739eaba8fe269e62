package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/routes"
)

// Default tracer name for routeview apps.
const defaultTracerName = "routeview"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "routeview").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider (otel.GetTracerProvider()).
	TracerProvider trace.TracerProvider

	// IncludePath includes the route path pattern in spans.
	// Enabled by default.
	IncludePath bool

	// Filter determines which loaders to trace.
	// Return true to trace the loader, false to skip.
	// If nil, all loaders are traced.
	Filter func(route *routes.Route) bool

	// AttributeExtractor extracts custom attributes for a route.
	AttributeExtractor func(route *routes.Route) []attribute.KeyValue
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

// WithIncludePath enables/disables including the route path in spans.
func WithIncludePath(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludePath = include
	}
}

// WithRouteFilter sets a filter function for loaders.
func WithRouteFilter(filter func(route *routes.Route) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(route *routes.Route) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		IncludePath: true,
	}
}

// OpenTelemetry creates loader middleware that traces every loader call.
//
// The middleware:
//   - Creates a span per loader call named "routeview.loader <route id>"
//   - Passes the span context to the loader for downstream calls
//   - Records errors and sets span status
//
// The tracer uses the global OpenTelemetry tracer provider unless
// WithTracerProvider is given. Configure it in main() before mounting:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) routes.LoaderMiddleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider == nil {
		config.TracerProvider = otel.GetTracerProvider()
	}
	tracer := config.TracerProvider.Tracer(config.TracerName)

	return func(next routes.LoaderFunc, route *routes.Route) routes.LoaderFunc {
		if config.Filter != nil && !config.Filter(route) {
			return next
		}
		return func(ctx context.Context) (any, error) {
			attrs := []attribute.KeyValue{
				attribute.String("routeview.route_id", route.ID),
			}
			if config.IncludePath && route.Path != "" {
				attrs = append(attrs, attribute.String("routeview.route_path", route.Path))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(route)...)
			}

			ctx, span := tracer.Start(ctx, "routeview.loader "+route.ID,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			start := time.Now()
			data, err := next(ctx)
			span.SetAttributes(attribute.Int64("routeview.duration_ms", time.Since(start).Milliseconds()))

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				if code := errors.Code(err); code != "" {
					span.SetAttributes(attribute.String("routeview.error_code", code))
				}
				return data, err
			}
			span.SetStatus(codes.Ok, "")
			return data, nil
		}
	}
}
