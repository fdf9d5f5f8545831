package tools

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/amoylab/tidio-mcp/internal/tidio"
)

// Args are the arguments of one tool invocation
type Args map[string]any

// isSet reports whether value counts as provided. Absent, null, empty string,
// zero and false all count as not provided.
func isSet(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	case int:
		return v != 0
	case int64:
		return v != 0
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case bool:
		return v
	default:
		return true
	}
}

// Required returns the stringified argument or a ValidationError naming it
func (a Args) Required(name string) (string, error) {
	v := a[name]
	if !isSet(v) {
		return "", errMissingArgument(name)
	}
	return tidio.Stringify(v), nil
}

// String returns the stringified argument, or "" when it is not set
func (a Args) String(name string) string {
	v := a[name]
	if !isSet(v) {
		return ""
	}
	return tidio.Stringify(v)
}

// Int returns the argument as an integer. Fractions are truncated and numeric
// strings are parsed; anything else yields 0.
func (a Args) Int(name string) int {
	switch v := a[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		f, _ := v.Float64()
		return int(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int(f)
	}
	return 0
}

// addQuery appends the named arguments that are set, in the given order
func (a Args) addQuery(q *tidio.Query, names ...string) {
	for _, name := range names {
		if v := a[name]; isSet(v) {
			q.Add(name, v)
		}
	}
}
