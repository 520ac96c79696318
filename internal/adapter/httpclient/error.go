package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// HTTPError represents a non-2xx response of the remote API.
type HTTPError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
	// Message is the "message" field of a JSON error body, if any.
	Message string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("http error: status=%d message=%q", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, string(e.Body))
}

// RemoteMessage returns a message fit for display.
func (e *HTTPError) RemoteMessage() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

func newHTTPError(resp *http.Response) *HTTPError {
	defer closeBody(resp.Body)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	e := &HTTPError{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header.Clone(),
	}
	if isJSON(resp.Header.Get("Content-Type")) {
		e.Message = decodeMessage(body)
	}
	return e
}

func decodeMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func isJSON(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType) == contentTypeJSON
}
