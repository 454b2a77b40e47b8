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
	// Validation Errors (E100-E199)
	// ============================================

	"E101": {
		Category:   CategoryValidation,
		Message:    "Invalid toast position",
		Suggestion: `Use "top" or "bottom".`,
	},
	"E102": {
		Category:   CategoryValidation,
		Message:    "Missing toast title",
		Suggestion: "Every toast needs a non-empty title.",
	},
	"E103": {
		Category:   CategoryValidation,
		Message:    "Invalid toast duration",
		Suggestion: `Give milliseconds ("1500"), a Go duration ("2s") or "persistent".`,
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E201": {
		Category:   CategoryProtocol,
		Message:    "Malformed client message",
		Suggestion: `Client messages are JSON objects like {"type":"event","hid":"t1-close","event":"click"}.`,
	},
	"E202": {
		Category:   CategoryProtocol,
		Message:    "Unknown event target",
		Suggestion: "The toast was probably disposed before the event arrived; reload to resync.",
	},

	// ============================================
	// Render Errors (E300-E399)
	// ============================================

	"E301": {
		Category:   CategoryRender,
		Message:    "Patch encoding failed",
		Suggestion: "The client will be resent a full snapshot on reconnect.",
	},
}
