package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://newtab.vango.dev/docs/errors/"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "newtab.json was not found in the given directory or any parent directory.",
		DocURL:   docBase + "E100",
	},
	"E101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "newtab.json could not be read or is not valid JSON.",
		DocURL:   docBase + "E101",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The server port must be between 0 and 65535.",
		DocURL:   docBase + "E102",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid timeout",
		Detail:   "Timeouts are Go durations such as \"10s\" or \"1m\".",
		DocURL:   docBase + "E103",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid metrics path",
		Detail:   "The metrics path must start with \"/\" and must not collide with the page or socket routes.",
		DocURL:   docBase + "E104",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Invalid site",
		Detail:   "Every configured site needs a URL, and URLs must be unique.",
		DocURL:   docBase + "E105",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "The log level must be one of debug, info, warn or error.",
		DocURL:   docBase + "E106",
	},
	"E107": {
		Category: CategoryConfig,
		Message:  "Invalid metrics buckets",
		Detail:   "Histogram buckets must be strictly increasing.",
		DocURL:   docBase + "E107",
	},

	// ============================================
	// Experiment Source Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryExperiment,
		Message:  "Unsupported experiment source",
		Detail:   "Experiment sources are a file path, a file:// URI or an s3://bucket/key URI.",
		DocURL:   docBase + "E200",
	},
	"E201": {
		Category: CategoryExperiment,
		Message:  "Experiment document unreadable",
		Detail:   "The experiment document could not be fetched. The page renders without an experiment.",
		DocURL:   docBase + "E201",
	},
	"E202": {
		Category: CategoryExperiment,
		Message:  "Experiment document invalid",
		Detail:   "The experiment document must be JSON of the form {\"data\":{\"id\":...,\"reverseMenuOptions\":...},\"error\":false}.",
		DocURL:   docBase + "E202",
	},

	// ============================================
	// Server and Protocol Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   docBase + "E300",
	},
	"E301": {
		Category: CategoryProtocol,
		Message:  "WebSocket upgrade failed",
		Detail:   "The client request could not be upgraded to a WebSocket connection.",
		DocURL:   docBase + "E301",
	},
	"E302": {
		Category: CategoryProtocol,
		Message:  "Invalid client message",
		Detail:   "Client messages are JSON objects of the form {\"hid\":\"h1\",\"event\":\"click\"}.",
		DocURL:   docBase + "E302",
	},
	"E303": {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "No handler is registered for the element. The page may have been rendered by an older server.",
		DocURL:   docBase + "E303",
	},
	"E304": {
		Category: CategoryServer,
		Message:  "Page render failed",
		Detail:   "The new-tab page could not be rendered.",
		DocURL:   docBase + "E304",
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
