package cnst

import "errors"

var (
	// ErrDuplicateToolName is returned when a tool name is declared twice
	ErrDuplicateToolName = errors.New("duplicate tool name")
	// ErrUnboundTool is returned when a catalog tool has no handler
	ErrUnboundTool = errors.New("tool has no handler")
	// ErrUnlistedHandler is returned when a handler is not in the catalog
	ErrUnlistedHandler = errors.New("handler is not listed in the catalog")
	// ErrInvalidBaseURL is returned when the upstream base url cannot be used
	ErrInvalidBaseURL = errors.New("invalid base url")
)
