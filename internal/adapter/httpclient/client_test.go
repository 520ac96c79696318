package httpclient

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"Absolute", "https://dummyjson.com", false},
		{"WithPath", "http://localhost:8080/api", false},
		{"Empty", "  ", true},
		{"Relative", "/products", true},
		{"Invalid", "http://[::1", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl, err := New(tt.baseURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.baseURL, cl.BaseURL())
		})
	}
}

func TestClientGetJSON(t *testing.T) {
	type payload struct {
		Message string `json:"message"`
	}

	t.Run("DecodesBody", func(t *testing.T) {
		var gotReq *http.Request
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				gotReq = r
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"message":"ok"}`))
			},
		))
		defer srv.Close()

		cl, err := New(srv.URL+"/api/", WithHeaders(http.Header{
			"X-Client": {"storefront"},
		}))
		require.NoError(t, err)

		var out payload
		err = cl.GetJSON(t.Context(), "products", url.Values{"limit": {"10"}}, &out)
		require.NoError(t, err)

		assert.Equal(t, "ok", out.Message)
		assert.Equal(t, "/api/products", gotReq.URL.Path)
		assert.Equal(t, "10", gotReq.URL.Query().Get("limit"))
		assert.Equal(t, "application/json", gotReq.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", gotReq.Header.Get("Accept"))
		assert.Equal(t, "storefront", gotReq.Header.Get("X-Client"))
	})

	t.Run("JSONErrorMessage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"message":"Product with id '999' not found"}`))
			},
		))
		defer srv.Close()

		cl, err := New(srv.URL)
		require.NoError(t, err)

		err = cl.GetJSON(t.Context(), "/products/999", nil, &payload{})
		require.Error(t, err)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		assert.Equal(t, "Product with id '999' not found", httpErr.Message)
		assert.Equal(t, "Product with id '999' not found", httpErr.RemoteMessage())
	})

	t.Run("PlainErrorBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "bad gateway", http.StatusBadGateway)
			},
		))
		defer srv.Close()

		cl, err := New(srv.URL)
		require.NoError(t, err)

		err = cl.GetJSON(t.Context(), "/products", nil, nil)

		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Empty(t, httpErr.Message)
		assert.Equal(t, "Request failed with status code 502", httpErr.RemoteMessage())
		assert.Contains(t, string(httpErr.Body), "bad gateway")
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{`))
			},
		))
		defer srv.Close()

		cl, err := New(srv.URL)
		require.NoError(t, err)

		err = cl.GetJSON(t.Context(), "/products", nil, &payload{})
		require.Error(t, err)
		var httpErr *HTTPError
		assert.False(t, errors.As(err, &httpErr))
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-release:
				case <-r.Context().Done():
				}
			},
		))
		defer srv.Close()
		defer close(release)

		cl, err := New(srv.URL, WithTimeout(20*time.Millisecond))
		require.NoError(t, err)

		err = cl.GetJSON(t.Context(), "/products", nil, nil)
		require.Error(t, err)
	})
}

func TestClientInterceptors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/fail" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		},
	))
	defer srv.Close()

	t.Run("PassThrough", func(t *testing.T) {
		var requests, successes, failures int
		cl, err := New(srv.URL,
			WithRequestInterceptor(func(r *http.Request) (*http.Request, error) {
				requests++
				return r, nil
			}),
			WithResponseInterceptor(ResponseInterceptor{
				OnSuccess: func(r *http.Response) (*http.Response, error) {
					successes++
					return r, nil
				},
				OnError: func(err error) error {
					failures++
					return err
				},
			}),
		)
		require.NoError(t, err)

		require.NoError(t, cl.GetJSON(t.Context(), "/ok", nil, nil))
		require.Error(t, cl.GetJSON(t.Context(), "/fail", nil, nil))

		assert.Equal(t, 2, requests)
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, failures)
	})

	t.Run("NilResponse", func(t *testing.T) {
		var failures int
		cl, err := New(srv.URL,
			WithResponseInterceptor(ResponseInterceptor{
				OnSuccess: func(*http.Response) (*http.Response, error) {
					return nil, nil
				},
				OnError: func(err error) error {
					failures++
					return err
				},
			}),
		)
		require.NoError(t, err)

		var out struct{}
		assert.NotPanics(t, func() {
			err = cl.GetJSON(t.Context(), "/ok", nil, &out)
		})
		require.Error(t, err)
		assert.Equal(t, 1, failures)
	})

	t.Run("RequestRejected", func(t *testing.T) {
		errRejected := errors.New("rejected")
		cl, err := New(srv.URL,
			WithRequestInterceptor(func(*http.Request) (*http.Request, error) {
				return nil, errRejected
			}),
		)
		require.NoError(t, err)

		err = cl.GetJSON(t.Context(), "/ok", nil, nil)
		assert.ErrorIs(t, err, errRejected)
	})

	t.Run("Observers", func(t *testing.T) {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		onRequest, onResponse := Observers(log)

		cl, err := New(srv.URL,
			WithRequestInterceptor(onRequest),
			WithResponseInterceptor(onResponse),
		)
		require.NoError(t, err)

		require.NoError(t, cl.GetJSON(t.Context(), "/ok", nil, nil))

		err = cl.GetJSON(t.Context(), "/fail", nil, nil)
		var httpErr *HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	})
}

func TestObserversTrace(t *testing.T) {
	onRequest, _ := Observers(nil)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/products", nil)
	got, err := onRequest(req)
	require.NoError(t, err)

	tr, ok := traceOf(got)
	require.True(t, ok)
	assert.Len(t, tr.id, 36)

	_, ok = traceOf(req)
	assert.False(t, ok)
}
