package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	rverrors "github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/routes"
)

func newTestMetrics(t *testing.T) *Metrics {
	t.Helper()
	return NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))
}

func TestMetricsLoader(t *testing.T) {
	m := newTestMetrics(t)
	route := &routes.Route{ID: "user"}

	ok := routes.Chain(func(ctx context.Context) (any, error) { return 1, nil }, route, m.Loader())
	bad := routes.Chain(func(ctx context.Context) (any, error) { return nil, errors.New("x") }, route, m.Loader())

	ok(context.Background())
	ok(context.Background())
	bad(context.Background())

	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("user", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.loadsTotal.WithLabelValues("user", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.loadDuration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestMetricsHooks(t *testing.T) {
	m := newTestMetrics(t)
	hooks := m.Hooks()

	hooks.OnRouteChange(routes.RouteChange{Action: history.Pop, Matches: []routes.Match{{}}})
	hooks.OnRouteChange(routes.RouteChange{Action: history.Push})

	if got := testutil.ToFloat64(m.navigations.WithLabelValues("POP")); got != 1 {
		t.Errorf("POP navigations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.navigations.WithLabelValues("PUSH")); got != 1 {
		t.Errorf("PUSH navigations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.unmatched); got != 1 {
		t.Errorf("unmatched = %v, want 1", got)
	}
}

func TestMetricsRendersAndSessions(t *testing.T) {
	m := newTestMetrics(t)

	m.RecordRender(nil)
	m.RecordRender(rverrors.New("R301"))
	m.RecordRender(errors.New("plain"))

	tests := []struct {
		status string
		want   float64
	}{
		{"success", 1},
		{"R301", 1},
		{"error", 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(m.renders.WithLabelValues(tt.status)); got != tt.want {
			t.Errorf("renders{%s} = %v, want %v", tt.status, got, tt.want)
		}
	}

	m.RecordSessionOpen()
	m.RecordSessionOpen()
	m.RecordSessionClose()
	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(WithRegistry(reg))

	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewMetrics(WithRegistry(reg))
}
