package tools

import (
	"encoding/json"
	"testing"

	"github.com/amoylab/tidio-mcp/internal/tidio"

	"github.com/stretchr/testify/assert"
)

func TestArgs_Required(t *testing.T) {
	tests := []struct {
		name    string
		args    Args
		want    string
		wantErr string
	}{
		{name: "absent", args: Args{}, wantErr: "contact_id is required"},
		{name: "null", args: Args{"contact_id": nil}, wantErr: "contact_id is required"},
		{name: "empty", args: Args{"contact_id": ""}, wantErr: "contact_id is required"},
		{name: "zero", args: Args{"contact_id": float64(0)}, wantErr: "contact_id is required"},
		{name: "string", args: Args{"contact_id": "c-1"}, want: "c-1"},
		{name: "number", args: Args{"contact_id": float64(123)}, want: "123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.Required("contact_id")
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArgs_Int(t *testing.T) {
	assert.Equal(t, 3, Args{"limit": float64(3)}.Int("limit"))
	assert.Equal(t, 2, Args{"limit": 2.9}.Int("limit"))
	assert.Equal(t, 4, Args{"limit": "4"}.Int("limit"))
	assert.Equal(t, 5, Args{"limit": json.Number("5")}.Int("limit"))
	assert.Equal(t, 0, Args{"limit": "many"}.Int("limit"))
	assert.Equal(t, 0, Args{}.Int("limit"))
}

func TestArgs_AddQuery(t *testing.T) {
	var q tidio.Query
	Args{"cursor": "abc", "limit": float64(10), "status": ""}.addQuery(&q, "limit", "cursor", "status")
	assert.Equal(t, "limit=10&cursor=abc", q.Encode())

	var empty tidio.Query
	Args{"limit": float64(0)}.addQuery(&empty, "limit", "cursor")
	assert.Empty(t, empty)
}
