package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{"contacts":[
	{"id":"1","email":"a@x.com","first_name":"Ann","last_name":"Lee"},
	{"id":"2","email":"b@x.com","first_name":"Bob","last_name":"Stone"},
	{"id":"3","email":null,"first_name":"Hannah"},
	{"id":"4","first_name":"Dana","last_name":"Anders"}
],"meta":{"cursor":"next"}}`

type searchResult struct {
	Contacts []struct {
		ID string `json:"id"`
	} `json:"contacts"`
	TotalFound int `json:"total_found"`
}

func runSearch(t *testing.T, payload string, args map[string]any) searchResult {
	t.Helper()
	api := &mockAPI{}
	api.On("Do", mock.Anything, request("/contacts", "limit=100")).Return(json.RawMessage(payload), nil).Once()
	d := newTestDispatcher(t, api)

	res := d.Handle(context.Background(), cnst.ToolSearchContacts, args)
	require.NoError(t, res.Err)
	api.AssertExpectations(t)

	var out searchResult
	require.NoError(t, json.Unmarshal([]byte(res.Text()), &out))
	return out
}

func ids(r searchResult) []string {
	out := []string{}
	for _, c := range r.Contacts {
		out = append(out, c.ID)
	}
	return out
}

func TestSearchContacts_FirstNameCaseInsensitive(t *testing.T) {
	out := runSearch(t, `{"contacts":[{"email":"a@x.com","first_name":"Ann","id":"1"},{"email":"b@x.com","first_name":"Bob","id":"2"}]}`,
		map[string]any{"first_name": "an"})
	assert.Equal(t, []string{"1"}, ids(out))
	assert.Equal(t, 1, out.TotalFound)
}

func TestSearchContacts_Filters(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{name: "no filters", args: nil, want: []string{"1", "2", "3", "4"}},
		{name: "first name", args: map[string]any{"first_name": "AN"}, want: []string{"1", "3", "4"}},
		{name: "email skips missing and null", args: map[string]any{"email": "@X.COM"}, want: []string{"1", "2"}},
		{name: "filters intersect", args: map[string]any{"first_name": "an", "last_name": "and"}, want: []string{"4"}},
		{name: "empty filter ignored", args: map[string]any{"email": ""}, want: []string{"1", "2", "3", "4"}},
		{name: "no match", args: map[string]any{"last_name": "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runSearch(t, searchPayload, tt.args)
			assert.Equal(t, tt.want, ids(out))
			assert.Equal(t, len(tt.want), out.TotalFound)
		})
	}
}

func TestSearchContacts_LimitTruncatesTotal(t *testing.T) {
	out := runSearch(t, searchPayload, map[string]any{"email": "x.com", "limit": float64(1)})
	assert.Equal(t, []string{"1"}, ids(out))
	assert.Equal(t, 1, out.TotalFound)
}

func TestSearchContacts_Limit(t *testing.T) {
	tests := []struct {
		name  string
		limit any
		want  []string
	}{
		{name: "larger than matches", limit: float64(10), want: []string{"1", "2", "3", "4"}},
		{name: "fraction truncated", limit: 2.5, want: []string{"1", "2"}},
		{name: "numeric string", limit: "3", want: []string{"1", "2", "3"}},
		{name: "zero ignored", limit: float64(0), want: []string{"1", "2", "3", "4"}},
		{name: "negative drops from end", limit: float64(-1), want: []string{"1", "2", "3"}},
		{name: "negative beyond matches", limit: float64(-10), want: []string{}},
		{name: "non numeric string", limit: "abc", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runSearch(t, searchPayload, map[string]any{"limit": tt.limit})
			assert.Equal(t, tt.want, ids(out))
			assert.Equal(t, len(tt.want), out.TotalFound)
		})
	}
}

func TestSliceEnd(t *testing.T) {
	assert.Equal(t, 2, sliceEnd(2, 4))
	assert.Equal(t, 4, sliceEnd(9, 4))
	assert.Equal(t, 3, sliceEnd(-1, 4))
	assert.Equal(t, 0, sliceEnd(-5, 4))
	assert.Equal(t, 0, sliceEnd(-1, 0))
}

func TestSearchContacts_MissingContacts(t *testing.T) {
	out := runSearch(t, `{"meta":{}}`, map[string]any{"email": "a"})
	assert.Empty(t, out.Contacts)
	assert.Equal(t, 0, out.TotalFound)
}

func TestSearchContacts_KeepsRawContacts(t *testing.T) {
	api := &mockAPI{}
	api.On("Do", mock.Anything, request("/contacts", "limit=100")).
		Return(json.RawMessage(`{"contacts":[{"id":"1","first_name":"Ann","custom":{"z":1,"a":2}}]}`), nil)
	d := newTestDispatcher(t, api)

	res := d.Handle(context.Background(), cnst.ToolSearchContacts, map[string]any{"first_name": "ann"})
	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"contacts":[{"id":"1","first_name":"Ann","custom":{"z":1,"a":2}}],"total_found":1}`, res.Text())
	assert.Contains(t, res.Text(), "\"z\": 1,\n")
}

func TestSearchContacts_UpstreamFailure(t *testing.T) {
	api := &mockAPI{}
	api.On("Do", mock.Anything, mock.Anything).Return(nil, errors.New("API Error 401: Unauthorized - \"\""))
	d := newTestDispatcher(t, api)

	res := d.Handle(context.Background(), cnst.ToolSearchContacts, map[string]any{"email": "a"})
	assert.Equal(t, `Error: API Error 401: Unauthorized - ""`, res.Text())
}
