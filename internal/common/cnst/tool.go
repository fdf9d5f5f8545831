package cnst

// Tool names exposed to MCP hosts
const (
	ToolGetContacts        = "get_contacts"
	ToolGetContactMessages = "get_contact_messages"
	ToolGetOperators       = "get_operators"
	ToolSearchContacts     = "search_contacts"
	ToolGetTickets         = "get_tickets"
	ToolGetTicketDetails   = "get_ticket_details"
)

const (
	ToolStatusSuccess = "success"
	ToolStatusError   = "error"
)
