package tools

import (
	"context"
	"encoding/json"

	"github.com/amoylab/tidio-mcp/internal/tidio"

	"github.com/stretchr/testify/mock"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Do(ctx context.Context, req *tidio.Request) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	data, _ := args.Get(0).(json.RawMessage)
	return data, args.Error(1)
}

// request matches a tidio.Request by path and encoded query
func request(path, query string) any {
	return mock.MatchedBy(func(req *tidio.Request) bool {
		return req.Path == path && req.Query.Encode() == query
	})
}
