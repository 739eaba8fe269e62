package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Scope Errors (R001-R099)
	// ============================================

	"R001": {
		Category: CategoryScope,
		Message:  "Route scope used outside a route provider",
		Detail:   "RouteData and LoaderData read the route that encloses the caller. They can only be used by components rendered as a route element.",
	},
	"R002": {
		Category: CategoryScope,
		Message:  "App data used outside an app provider",
		Detail:   "The scope was not created by a mounted or composed App, so there is no route table, history or loader cache to read.",
	},

	// ============================================
	// Route Table Errors (R100-R199)
	// ============================================

	"R101": {
		Category: CategoryRoute,
		Message:  "Route id is empty",
		Detail:   "Every route in the table needs a unique, non-empty id. Children reference their parent by this id.",
	},
	"R102": {
		Category: CategoryRoute,
		Message:  "Duplicate route id",
		Detail:   "Two routes were added with the same id. Ids key the component map and the loader cache, so they must be unique.",
	},
	"R103": {
		Category: CategoryRoute,
		Message:  "Route parent chain forms a cycle",
		Detail:   "Following parentId from this route leads back to itself, so it can never be placed in the route tree.",
	},
	"R104": {
		Category: CategoryRoute,
		Message:  "Missing path parameter",
		Detail:   "A redirect target names a path parameter that the current match does not provide.",
	},

	// ============================================
	// Render Errors (R200-R299)
	// ============================================

	"R201": {
		Category: CategoryRender,
		Message:  "No component registered for route",
		Detail:   "The route has no redirect and no entry in the component map. It renders nothing.",
	},
	"R202": {
		Category: CategoryRender,
		Message:  "Lazy route component failed to load",
		Detail:   "The loader of a lazy component returned an error. The route renders an error placeholder instead.",
	},

	// ============================================
	// Loader Errors (R300-R399)
	// ============================================

	"R301": {
		Category: CategoryLoader,
		Message:  "Route loader failed",
		Detail:   "The loader declared on the route returned an error. The failure is kept in the loader cache and the loader is not retried until the app remounts.",
	},

	// ============================================
	// Mount Errors (R400-R499)
	// ============================================

	"R401": {
		Category: CategoryMount,
		Message:  "Mount target not found",
		Detail:   "No element with the configured id exists in the document, and no target element was given.",
	},
	"R402": {
		Category: CategoryMount,
		Message:  "App is not mounted",
		Detail:   "The operation needs a running app event loop. Call Mount first.",
	},
	"R403": {
		Category: CategoryMount,
		Message:  "History is required",
		Detail:   "RenderClient needs a history to read the current location from and to navigate with.",
	},

	// ============================================
	// Config Errors (R500-R599)
	// ============================================

	"R501": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "routeview.json or routeview.yaml could not be parsed or failed validation.",
	},
	"R502": {
		Category: CategoryConfig,
		Message:  "Unknown loader kind",
		Detail:   "Loader kinds are static, http and s3.",
	},
	"R503": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No routeview.json, routeview.yaml or routeview.yml was found.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
