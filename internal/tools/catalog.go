package tools

import (
	"github.com/amoylab/tidio-mcp/internal/common/cnst"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
)

// Catalog returns every tool this server can execute, in a stable order.
// Defaults in the schemas are advisory; handlers never inject them.
// tools/list is answered by the mcp-go server, which lists them sorted by name.
func Catalog() []mcpgo.Tool {
	return []mcpgo.Tool{
		readOnlyTool(cnst.ToolGetContacts,
			mcpgo.WithDescription("Get Tidio contacts (customers who have interacted with chat). Supports pagination with cursor."),
			mcpgo.WithNumber("limit",
				mcpgo.Description("Number of contacts to return (max 100)"),
				mcpgo.DefaultNumber(50),
			),
			mcpgo.WithString("cursor",
				mcpgo.Description("Pagination cursor for next page of results"),
			),
		),
		readOnlyTool(cnst.ToolGetContactMessages,
			mcpgo.WithDescription("Get conversation messages for a specific contact by contact ID. This shows the full conversation transcript."),
			mcpgo.WithString("contact_id",
				mcpgo.Description("The contact ID to get messages for"),
				mcpgo.Required(),
			),
			mcpgo.WithNumber("limit",
				mcpgo.Description("Number of messages to return (max 100)"),
				mcpgo.DefaultNumber(100),
			),
		),
		readOnlyTool(cnst.ToolGetOperators,
			mcpgo.WithDescription("Get list of Tidio operators/agents who handle customer support"),
		),
		readOnlyTool(cnst.ToolSearchContacts,
			mcpgo.WithDescription("Search contacts by email, name, or other criteria"),
			mcpgo.WithString("email",
				mcpgo.Description("Search by email address"),
			),
			mcpgo.WithString("first_name",
				mcpgo.Description("Search by first name"),
			),
			mcpgo.WithString("last_name",
				mcpgo.Description("Search by last name"),
			),
			mcpgo.WithNumber("limit",
				mcpgo.Description("Number of results to return"),
				mcpgo.DefaultNumber(50),
			),
		),
		readOnlyTool(cnst.ToolGetTickets,
			mcpgo.WithDescription("Get support tickets from Tidio"),
			mcpgo.WithString("status",
				mcpgo.Description("Filter by ticket status (open, closed, etc.)"),
			),
			mcpgo.WithNumber("limit",
				mcpgo.Description("Number of tickets to return"),
				mcpgo.DefaultNumber(50),
			),
		),
		readOnlyTool(cnst.ToolGetTicketDetails,
			mcpgo.WithDescription("Get detailed information about a specific ticket"),
			mcpgo.WithString("ticket_id",
				mcpgo.Description("The ticket ID to get details for"),
				mcpgo.Required(),
			),
		),
	}
}

// readOnlyTool declares a tool that only reads from the Tidio API
func readOnlyTool(name string, opts ...mcpgo.ToolOption) mcpgo.Tool {
	opts = append(opts,
		mcpgo.WithReadOnlyHintAnnotation(true),
		mcpgo.WithDestructiveHintAnnotation(false),
		mcpgo.WithIdempotentHintAnnotation(true),
	)
	return mcpgo.NewTool(name, opts...)
}
