package cnst

// Upstream defaults
const (
	TidioBaseURL = "https://api.tidio.com"

	HeaderClientID     = "X-Tidio-Openapi-Client-Id"
	HeaderClientSecret = "X-Tidio-Openapi-Client-Secret"
	HeaderAccept       = "Accept"
	AcceptVersion      = "application/json; version=1"

	// Placeholder credentials used when none are configured. Every upstream call
	// made with them fails authentication, but the server still starts.
	PlaceholderClientID     = "your_client_id_here"
	PlaceholderClientSecret = "your_client_secret_here"
)
