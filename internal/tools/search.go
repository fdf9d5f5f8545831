package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/amoylab/tidio-mcp/internal/tidio"

	"github.com/tidwall/gjson"
)

// searchPageSize is the number of contacts fetched before filtering locally
const searchPageSize = 100

// searchFields are matched in this order; each supplied one narrows the result
var searchFields = []string{"email", "first_name", "last_name"}

// searchContacts fetches one page of contacts and filters it locally.
// total_found is the size of the returned (truncated) list. A negative limit
// drops that many matches from the end.
func searchContacts(ctx context.Context, api API, args Args) (json.RawMessage, error) {
	req := &tidio.Request{Path: "/contacts"}
	req.Query.Add("limit", searchPageSize)
	data, err := api.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var contacts []gjson.Result
	if list := gjson.GetBytes(data, "contacts"); list.IsArray() {
		contacts = list.Array()
	}

	for _, field := range searchFields {
		needle := args.String(field)
		if needle == "" {
			continue
		}
		contacts = filterContacts(contacts, field, strings.ToLower(needle))
	}

	if isSet(args["limit"]) {
		contacts = contacts[:sliceEnd(args.Int("limit"), len(contacts))]
	}

	return renderSearch(contacts), nil
}

// sliceEnd clamps end to [0, n]; a negative end counts back from n
func sliceEnd(end, n int) int {
	if end < 0 {
		end += n
	}
	return max(0, min(end, n))
}

func filterContacts(contacts []gjson.Result, field, needle string) []gjson.Result {
	kept := contacts[:0:0]
	for _, c := range contacts {
		v := c.Get(field)
		var haystack string
		switch v.Type {
		case gjson.String:
			haystack = v.Str
		case gjson.Number:
			haystack = v.Raw
		default:
			continue
		}
		if haystack != "" && strings.Contains(strings.ToLower(haystack), needle) {
			kept = append(kept, c)
		}
	}
	return kept
}

// renderSearch writes the contacts as they came from upstream, untouched
func renderSearch(contacts []gjson.Result) json.RawMessage {
	var buf bytes.Buffer
	buf.WriteString(`{"contacts":[`)
	for i, c := range contacts {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(c.Raw)
	}
	buf.WriteString(`],"total_found":`)
	buf.WriteString(strconv.Itoa(len(contacts)))
	buf.WriteByte('}')
	return buf.Bytes()
}
