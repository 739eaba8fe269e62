package routes

import (
	"github.com/vango-dev/routeview/internal/errors"
)

// Sentinel errors. Match them with errors.Is; the concrete errors carry the
// route id and details.
var (
	// ErrNoRouteScope is returned when route data is read outside a route element.
	ErrNoRouteScope = errors.New("R001")

	// ErrEmptyID is returned when a route without an id is added to a Table.
	ErrEmptyID = errors.New("R101")

	// ErrDuplicateID is returned when a Table already holds the id.
	ErrDuplicateID = errors.New("R102")

	// ErrCycle is returned by Build when parent ids form a loop.
	ErrCycle = errors.New("R103")

	// ErrMissingParam is returned by GeneratePath for an unfilled required parameter.
	ErrMissingParam = errors.New("R104")

	// ErrMissingComponent is logged for routes that have neither a component nor a redirect.
	ErrMissingComponent = errors.New("R201")

	// ErrLazyFailed is returned by lazy components whose loader failed.
	ErrLazyFailed = errors.New("R202")

	// ErrLoaderFailed wraps the error of a failed route loader.
	ErrLoaderFailed = errors.New("R301")
)
