package tidio

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UpstreamError is returned when the Tidio API answered with a non-2xx status
type UpstreamError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("API Error %d: %s - %s", e.StatusCode, e.Status, renderBody(e.Body))
}

// TransportError is returned when no response was received at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Tidio API request failed: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// renderBody returns the body as compact JSON, or as a JSON string when the
// body is not valid JSON.
func renderBody(body []byte) string {
	raw := decodeBody(body)
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// decodeBody turns a response body into a JSON value. Non-JSON payloads
// (including an empty body) are carried as a JSON string.
func decodeBody(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	return quote(string(body))
}

func quote(s string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n"))
}
