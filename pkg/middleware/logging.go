package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/vango-dev/routeview/pkg/routes"
)

// Logging creates loader middleware that logs every loader call.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) routes.LoaderMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next routes.LoaderFunc, route *routes.Route) routes.LoaderFunc {
		return func(ctx context.Context) (any, error) {
			start := time.Now()
			logger.DebugContext(ctx, "loader start", "route", route.ID, "path", route.Path)

			data, err := next(ctx)
			duration := time.Since(start)
			if err != nil {
				logger.WarnContext(ctx, "loader failed", "route", route.ID, "duration", duration, "error", err)
				return data, err
			}
			logger.DebugContext(ctx, "loader done", "route", route.ID, "duration", duration)
			return data, nil
		}
	}
}

// LogRouteChanges returns hooks that log every handled location change.
func LogRouteChanges(logger *slog.Logger) routes.Hooks {
	if logger == nil {
		logger = slog.Default()
	}
	return routes.Hooks{
		OnRouteChange: func(c routes.RouteChange) {
			ids := make([]string, len(c.Matches))
			for i, m := range c.Matches {
				ids[i] = m.Route.ID
			}
			logger.Info("route change",
				"path", c.Location.Pathname,
				"action", string(c.Action),
				"first", c.IsFirst,
				"routes", ids,
			)
		},
	}
}
