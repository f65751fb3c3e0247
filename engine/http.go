package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"Lantern/errors"
)

// HTTPService performs all outbound requests for the engine. Sources go
// through it so default headers, retries, caching and status mapping stay in
// one place.
type HTTPService struct {
	Client         *http.Client
	DefaultHeaders http.Header
	UserAgent      string
	MaxRetries     int
	Cache          *CacheService
	Logger         *LoggerService
}

// Fetch performs a single GET and maps non-2xx statuses onto the sentinel
// errors. The caller owns the response body.
func (h *HTTPService) Fetch(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range h.DefaultHeaders {
		req.Header[k] = v
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	if req.Header.Get("User-Agent") == "" && h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", url, errors.Join(errors.ErrNetworkIssue, err))
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, statusError(resp.StatusCode, url)
	}
	return resp, nil
}

// FetchWithRetries retries transient failures with exponential backoff.
// Network errors, 5xx responses and 429 are retried; other statuses fail
// immediately.
func (h *HTTPService) FetchWithRetries(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= h.MaxRetries; attempt++ {
		resp, err := h.Fetch(ctx, url, headers)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}
		if h.Logger != nil {
			h.Logger.Warn("fetch %s failed (attempt %d/%d): %v", url, attempt+1, h.MaxRetries+1, err)
		}

		// Don't sleep after the last attempt
		if attempt < h.MaxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", h.MaxRetries+1, lastErr)
}

// FetchString fetches url and returns the response body as a string
func (h *HTTPService) FetchString(ctx context.Context, url string, headers http.Header) (string, error) {
	body, err := h.fetchBytes(ctx, url, headers)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchDocument fetches url and parses the body as HTML. Parsed documents are
// cached per URL.
func (h *HTTPService) FetchDocument(ctx context.Context, url string, headers http.Header) (*goquery.Document, error) {
	cacheKey := "doc:" + url
	if cached, ok := h.Cache.Get(cacheKey); ok {
		if doc, ok := cached.(*goquery.Document); ok {
			return doc, nil
		}
	}

	body, err := h.fetchBytes(ctx, url, headers)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	h.Cache.Set(cacheKey, doc)
	return doc, nil
}

// FetchJSON fetches url and unmarshals the body into target. Raw bodies are
// cached per URL so repeated decodes skip the network.
func (h *HTTPService) FetchJSON(ctx context.Context, url string, headers http.Header, target interface{}) error {
	cacheKey := "json:" + url
	if cached, ok := h.Cache.Get(cacheKey); ok {
		if raw, ok := cached.([]byte); ok {
			return json.Unmarshal(raw, target)
		}
	}

	body, err := h.fetchBytes(ctx, url, headers)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode JSON from %s: %w", url, err)
	}

	h.Cache.Set(cacheKey, body)
	return nil
}

func (h *HTTPService) fetchBytes(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	resp, err := h.FetchWithRetries(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

func statusError(status int, url string) error {
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%s returned 404: %w", url, errors.ErrNotFound)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%s returned %d: %w", url, status, errors.ErrUnauthorized)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%s returned 429: %w", url, errors.ErrRateLimit)
	case status >= 500:
		return fmt.Errorf("%s returned %d: %w", url, status, errors.ErrServerError)
	default:
		return fmt.Errorf("%s returned %d: %w", url, status, errors.ErrBadRequest)
	}
}

func retryable(err error) bool {
	return errors.Is(err, errors.ErrNetworkIssue) ||
		errors.Is(err, errors.ErrServerError) ||
		errors.Is(err, errors.ErrRateLimit)
}
