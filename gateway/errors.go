package gateway

import (
	"encoding/json"
	"fmt"
)

// APIError is a failed platform API call. Body holds the raw response text; the
// remote service reports errors as a JSON object with a "detail" field, which is
// surfaced through Detail when present. Callers classify failures by matching the
// server's message, so Error favours the message over a status-code summary.
type APIError struct {
	StatusCode int
	Body       string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// extractDetail pulls the "detail" field out of a JSON error body, returning an
// empty string for plain-text or malformed bodies.
func extractDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
