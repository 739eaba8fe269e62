package loaders

import (
	"context"

	"github.com/vango-dev/routeview/pkg/routes"
)

// Static returns a loader that always yields v.
func Static(v any) routes.LoaderFunc {
	return func(ctx context.Context) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return v, nil
	}
}
