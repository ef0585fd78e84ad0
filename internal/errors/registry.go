package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Construction Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryConstruction,
		Message:  "Unsupported event kind",
		Detail:   "The element kind does not declare support for this event. Only kinds implementing CanSetEvent for the event accept its handlers.",
	},
	"E002": {
		Category: CategoryConstruction,
		Message:  "Unsupported child kind",
		Detail:   "The element kind does not accept children of this kind.",
	},
	"E003": {
		Category: CategoryConstruction,
		Message:  "Unknown attribute",
		Detail:   "The element kind does not recognize this attribute key and rejects unknown keys.",
	},
	"E004": {
		Category: CategoryConstruction,
		Message:  "Builder already built",
		Detail:   "A builder is consumed by Build and cannot be used again.",
	},
	"E005": {
		Category: CategoryConstruction,
		Message:  "Invalid attribute value",
		Detail:   "The attribute value could not be decoded for this element kind.",
	},

	// ============================================
	// Runtime Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryRuntime,
		Message:  "Render function failed",
		Detail:   "The render function returned an error or no root node.",
	},
	"E021": {
		Category: CategoryRuntime,
		Message:  "Render function panicked",
		Detail:   "A panic was recovered while building the scene.",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No scene.json or scene.yaml was found.",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range.",
	},

	// ============================================
	// Export / Inspector Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryExport,
		Message:  "Frame export failed",
		Detail:   "The frame report could not be written to the configured store.",
	},
	"E141": {
		Category: CategoryInspector,
		Message:  "Inspector failed",
		Detail:   "The inspection server stopped with an error.",
	},
}
