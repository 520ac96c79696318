package httpclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type traceKey struct{}

type trace struct {
	id      string
	started time.Time
}

// Observers returns an interceptor pair that logs every exchange at debug
// level and failures at warn level. Requests, responses and errors pass
// through unchanged.
func Observers(log *slog.Logger) (RequestInterceptor, ResponseInterceptor) {
	if log == nil {
		log = slog.Default()
	}

	onRequest := func(r *http.Request) (*http.Request, error) {
		t := trace{id: uuid.NewString(), started: time.Now()}
		log.Debug("request",
			"request_id", t.id, "method", r.Method, "url", r.URL.Redacted(),
		)
		return r.WithContext(context.WithValue(r.Context(), traceKey{}, t)), nil
	}

	onResponse := ResponseInterceptor{
		OnSuccess: func(resp *http.Response) (*http.Response, error) {
			attrs := []any{"status", resp.StatusCode}
			if t, ok := traceOf(resp.Request); ok {
				attrs = append(attrs,
					"request_id", t.id, "elapsed", time.Since(t.started),
				)
			}
			log.Debug("response", attrs...)
			return resp, nil
		},
		OnError: func(err error) error {
			attrs := []any{"err", err}
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				attrs = append(attrs, "status", httpErr.StatusCode)
			}
			log.Warn("request failed", attrs...)
			return err
		},
	}

	return onRequest, onResponse
}

func traceOf(r *http.Request) (trace, bool) {
	if r == nil {
		return trace{}, false
	}
	t, ok := r.Context().Value(traceKey{}).(trace)
	return t, ok
}
