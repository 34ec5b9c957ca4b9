// Package remote implements the template and profile services against the
// card platform's HTTP API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/janisto/cardfolio/internal/platform/auth"
	applog "github.com/janisto/cardfolio/internal/platform/logging"
)

const (
	userAgent    = "cardfolio"
	acceptHeader = "application/json"
	// maxErrorBody bounds how much of an error response is read for logging.
	maxErrorBody = 4 << 10
)

// Errors for failures that have no domain meaning.
var (
	ErrUnauthorized = errors.New("card api rejected credentials")
	ErrUpstream     = errors.New("card api upstream error")
)

// UpstreamErrorKind classifies card API failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindNotFound     UpstreamErrorKind = "not_found"
	UpstreamErrorKindConflict     UpstreamErrorKind = "conflict"
	UpstreamErrorKindInvalid      UpstreamErrorKind = "invalid"
	UpstreamErrorKindUnauthorized UpstreamErrorKind = "unauthorized"
	UpstreamErrorKindUpstream     UpstreamErrorKind = "upstream"
)

// UpstreamError carries response metadata of a failed card API call.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Status     int
	RetryAfter string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "card api upstream error"
	}
	if e.cause == nil {
		return fmt.Sprintf("card api error (kind=%s status=%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("card api error (kind=%s status=%d): %v", e.Kind, e.Status, e.cause)
}

// Unwrap enables errors.Is against the domain sentinel errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// statusErrors maps non-success statuses to the sentinel returned for them.
// Zero values fall back to the generic kinds.
type statusErrors struct {
	notFound error
	conflict error
	invalid  error
}

// Client talks to the card platform API. Use Templates and Profiles to get
// the service implementations.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// NewClient creates a card API client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Templates returns the template service backed by c.
func (c *Client) Templates() *TemplateStore {
	return &TemplateStore{c: c}
}

// Profiles returns the profile service backed by c.
func (c *Client) Profiles() *ProfileStore {
	return &ProfileStore{c: c}
}

func (c *Client) doRequest(
	ctx context.Context, method, path string, query url.Values, cred auth.Credential, body any,
) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}
	return c.httpClient.Do(req)
}

func (c *Client) decodeResponse(ctx context.Context, resp *http.Response, target any, se statusErrors) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if target == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decoding card api response: %w", err)
		}
		return nil
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return upstreamErrorFromResponse(resp, UpstreamErrorKindNotFound, orDefault(se.notFound, ErrUpstream))
	case http.StatusConflict:
		return upstreamErrorFromResponse(resp, UpstreamErrorKindConflict, orDefault(se.conflict, ErrUpstream))
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		logErrorBody(ctx, resp)
		return upstreamErrorFromResponse(resp, UpstreamErrorKindInvalid, orDefault(se.invalid, ErrUpstream))
	case http.StatusUnauthorized, http.StatusForbidden:
		applog.LogWarn(ctx, "card api rejected credentials", zap.Int("status", resp.StatusCode))
		return upstreamErrorFromResponse(resp, UpstreamErrorKindUnauthorized, ErrUnauthorized)
	default:
		logErrorBody(ctx, resp)
		return upstreamErrorFromResponse(resp, UpstreamErrorKindUpstream, ErrUpstream)
	}
}

func orDefault(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}

func upstreamErrorFromResponse(resp *http.Response, kind UpstreamErrorKind, cause error) *UpstreamError {
	return &UpstreamError{
		Kind:       kind,
		Status:     resp.StatusCode,
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
		cause:      cause,
	}
}

func logErrorBody(ctx context.Context, resp *http.Response) {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	applog.LogWarn(ctx, "card api request failed",
		zap.Int("status", resp.StatusCode),
		zap.String("url", resp.Request.URL.Path),
		zap.ByteString("body", body),
	)
}
