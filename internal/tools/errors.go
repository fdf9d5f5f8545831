package tools

import "fmt"

// ValidationError reports a problem detected before any upstream call
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func errMissingArgument(name string) error {
	return &ValidationError{Message: fmt.Sprintf("%s is required", name)}
}

func errUnknownTool(name string) error {
	return &ValidationError{Message: fmt.Sprintf("Unknown tool: %s", name)}
}
