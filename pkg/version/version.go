package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var Version string

// Get returns the current version of the application, without the trailing newline of the VERSION file
func Get() string {
	return strings.TrimSpace(Version)
}
