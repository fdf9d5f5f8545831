package tools

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/amoylab/tidio-mcp/internal/common/cnst"
	"github.com/amoylab/tidio-mcp/internal/tidio"
)

// API is the part of the Tidio client the handlers need
type API interface {
	Do(ctx context.Context, req *tidio.Request) (json.RawMessage, error)
}

type handlerFunc func(ctx context.Context, api API, args Args) (json.RawMessage, error)

// handlers maps every catalog tool to its implementation
var handlers = map[string]handlerFunc{
	cnst.ToolGetContacts:        getContacts,
	cnst.ToolGetContactMessages: getContactMessages,
	cnst.ToolGetOperators:       getOperators,
	cnst.ToolSearchContacts:     searchContacts,
	cnst.ToolGetTickets:         getTickets,
	cnst.ToolGetTicketDetails:   getTicketDetails,
}

func getContacts(ctx context.Context, api API, args Args) (json.RawMessage, error) {
	req := &tidio.Request{Path: "/contacts"}
	args.addQuery(&req.Query, "limit", "cursor")
	return api.Do(ctx, req)
}

func getContactMessages(ctx context.Context, api API, args Args) (json.RawMessage, error) {
	contactID, err := args.Required("contact_id")
	if err != nil {
		return nil, err
	}
	req := &tidio.Request{Path: "/contacts/" + url.PathEscape(contactID) + "/messages"}
	args.addQuery(&req.Query, "limit")
	return api.Do(ctx, req)
}

func getOperators(ctx context.Context, api API, _ Args) (json.RawMessage, error) {
	return api.Do(ctx, &tidio.Request{Path: "/operators"})
}

func getTickets(ctx context.Context, api API, args Args) (json.RawMessage, error) {
	req := &tidio.Request{Path: "/tickets"}
	args.addQuery(&req.Query, "status", "limit")
	return api.Do(ctx, req)
}

func getTicketDetails(ctx context.Context, api API, args Args) (json.RawMessage, error) {
	ticketID, err := args.Required("ticket_id")
	if err != nil {
		return nil, err
	}
	return api.Do(ctx, &tidio.Request{Path: "/tickets/" + url.PathEscape(ticketID)})
}
