package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Binding Errors (C001-C099)
	// ============================================

	"C001": {
		Category:   CategoryBinding,
		Message:    "Empty handler name",
		Suggestion: "Give the marker attribute the name of a handler, e.g. on-click=\"save\".",
	},
	"C002": {
		Category:   CategoryBinding,
		Message:    "Handler not found",
		Suggestion: "Define a method or handler with this name on the component, or fix the attribute value.",
	},
	"C003": {
		Category:   CategoryBinding,
		Message:    "Handler is not callable",
		Suggestion: "Handlers must have the shape func(*vdom.Event) or func().",
	},

	// ============================================
	// Config Errors (C100-C199)
	// ============================================

	"C100": {
		Category:   CategoryConfig,
		Message:    "Cannot read config file",
		Suggestion: "Check the path passed with --config.",
	},
	"C101": {
		Category:   CategoryConfig,
		Message:    "Invalid config file",
		Suggestion: "Config files are JSON (.json) or YAML (.yaml, .yml).",
	},
	"C102": {
		Category:   CategoryConfig,
		Message:    "Invalid marker prefix",
		Suggestion: "The prefix must be a non-empty attribute name fragment such as \"on-\".",
	},
	"C103": {
		Category:   CategoryConfig,
		Message:    "Invalid event catalog",
		Suggestion: "Event kinds must be non-empty, lowercase and unique.",
	},
	"C104": {
		Category: CategoryConfig,
		Message:  "Invalid server settings",
	},
	"C105": {
		Category:   CategoryConfig,
		Message:    "Invalid log level",
		Suggestion: "Use one of debug, info, warn or error.",
	},

	// ============================================
	// Bridge Errors (C200-C299)
	// ============================================

	"C200": {
		Category: CategoryBridge,
		Message:  "Malformed event frame",
	},
	"C201": {
		Category:   CategoryBridge,
		Message:    "Unknown hydration ID",
		Suggestion: "The page and the live component must be rendered from the same markup.",
	},
	"C202": {
		Category: CategoryBridge,
		Message:  "Component failed to attach",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
