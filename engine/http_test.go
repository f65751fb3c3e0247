package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lantern/errors"
)

func newTestHTTPService(srv *httptest.Server, retries int, ttl time.Duration) *HTTPService {
	return &HTTPService{
		Client:     srv.Client(),
		MaxRetries: retries,
		Cache:      NewCacheService(ttl),
		Logger:     &LoggerService{},
	}
}

func TestFetchStatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "not found", status: 404, wantErr: errors.ErrNotFound},
		{name: "unauthorized", status: 401, wantErr: errors.ErrUnauthorized},
		{name: "forbidden", status: 403, wantErr: errors.ErrUnauthorized},
		{name: "rate limited", status: 429, wantErr: errors.ErrRateLimit},
		{name: "server error", status: 500, wantErr: errors.ErrServerError},
		{name: "bad gateway", status: 502, wantErr: errors.ErrServerError},
		{name: "other client error", status: 418, wantErr: errors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			h := newTestHTTPService(srv, 0, 0)
			_, err := h.Fetch(context.Background(), srv.URL, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "status %d should map to %v, got %v", tt.status, tt.wantErr, err)
		})
	}
}

func TestFetchAppliesDefaultHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zh-TW", r.Header.Get("Accept-Language"))
		assert.Equal(t, "lantern-test/1", r.Header.Get("User-Agent"))
		assert.Equal(t, "call", r.Header.Get("X-Source"))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, 0)
	h.DefaultHeaders = make(http.Header)
	h.DefaultHeaders.Set("Accept-Language", "zh-TW")
	h.DefaultHeaders.Set("X-Source", "default")
	h.UserAgent = "lantern-test/1"

	callHeaders := make(http.Header)
	callHeaders.Set("X-Source", "call")

	resp, err := h.Fetch(context.Background(), srv.URL, callHeaders)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestFetchPerCallUserAgentWins(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "special-agent/2", r.Header.Get("User-Agent"))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, 0)
	h.UserAgent = "lantern-test/1"

	headers := make(http.Header)
	headers.Set("User-Agent", "special-agent/2")

	resp, err := h.Fetch(context.Background(), srv.URL, headers)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestFetchWithRetriesRecovers(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 1, 0)
	body, err := h.FetchString(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchWithRetriesStopsOnPermanentError(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 3, 0)
	_, err := h.FetchWithRetries(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, int32(1), requests.Load(), "a 404 is not worth retrying")
}

func TestFetchWithRetriesExhausted(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 1, 0)
	_, err := h.FetchWithRetries(context.Background(), srv.URL, nil)
	require.Error(t, err)
	assert.True(t, errors.IsServerError(err))
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchDocumentCaches(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("<html><body><h1>cached page</h1></body></html>"))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, time.Minute)

	first, err := h.FetchDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "cached page", first.Find("h1").Text())

	second, err := h.FetchDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), requests.Load())
}

func TestFetchDocumentCacheDisabled(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte("<html><body></body></html>"))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, 0)

	_, err := h.FetchDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	_, err = h.FetchDocument(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), requests.Load())
}

func TestFetchJSON(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "lantern", "count": 3}`))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, time.Minute)

	var payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, h.FetchJSON(context.Background(), srv.URL, nil, &payload))
	assert.Equal(t, "lantern", payload.Name)
	assert.Equal(t, 3, payload.Count)

	// The raw body is cached, so a second decode skips the network.
	var again struct {
		Name string `json:"name"`
	}
	require.NoError(t, h.FetchJSON(context.Background(), srv.URL, nil, &again))
	assert.Equal(t, "lantern", again.Name)
	assert.Equal(t, int32(1), requests.Load())
}

func TestFetchJSONMalformed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name": `))
	}))
	t.Cleanup(srv.Close)

	h := newTestHTTPService(srv, 0, 0)

	var payload map[string]interface{}
	err := h.FetchJSON(context.Background(), srv.URL, nil, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode JSON")
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, retryable(statusError(500, "u")))
	assert.True(t, retryable(statusError(429, "u")))
	assert.True(t, retryable(errors.ErrNetworkIssue))
	assert.False(t, retryable(statusError(404, "u")))
	assert.False(t, retryable(statusError(400, "u")))
	assert.False(t, retryable(errors.ErrInvalidInput))
}
