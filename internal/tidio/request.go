package tidio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Request describes one logical call against the Tidio API
type Request struct {
	Method string // defaults to GET
	Path   string // must begin with "/"
	Query  Query
	Body   any // marshalled as JSON when set
}

// Param is a single query parameter
type Param struct {
	Key   string
	Value string
}

// Query is an ordered list of query parameters. Order of insertion is kept on
// the wire, which url.Values would not do.
type Query []Param

// Add appends key with value stringified
func (q *Query) Add(key string, value any) {
	*q = append(*q, Param{Key: key, Value: Stringify(value)})
}

// Encode renders the query in form encoding, without the leading "?"
func (q Query) Encode() string {
	if len(q) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// Stringify converts a query value to its wire form. Numbers use the shortest
// decimal representation, so 10 becomes "10" rather than "10.000000".
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(r.Method)
}

func (r *Request) url(baseURL string) string {
	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := strings.TrimRight(baseURL, "/") + path
	if qs := r.Query.Encode(); qs != "" {
		u += "?" + qs
	}
	return u
}
