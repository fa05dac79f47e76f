package tracing

// Span attribute keys for console tracing. These constants define the
// semantic conventions for span attributes across the command pipeline.
const (
	// Command attributes
	AttrCommandName   = "command.name"
	AttrCommandAlias  = "command.alias"
	AttrCommandResult = "command.result"

	// Tag attributes
	AttrTagName    = "tag.name"
	AttrTagCount   = "tag.count"
	AttrTagCreated = "tag.created"
	AttrMatchMode  = "tag.match_mode"

	// Settings attributes
	AttrSettingsPath = "settings.path"

	// History attributes
	AttrHistoryGUID = "history.guid"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixCommand = "command."
	SpanPrefixStore   = "store."
)

// Event names for span events.
const (
	EventTagCreated      = "tag.created"
	EventSaveRequested   = "settings.save_requested"
	EventHistoryRecorded = "history.recorded"
)
