package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/habitgrid/habitkit"
	"github.com/habitgrid/habitkit/core/kv"
	"github.com/habitgrid/habitkit/core/session"
	"github.com/habitgrid/habitkit/pkg/logger"
)

// Client is the HTTP client for the HabitGrid API. It is safe for concurrent
// use. The bearer token is read from the kv store on every request, never
// cached, so the client always reflects the latest login or logout.
type Client struct {
	baseURL   *url.URL
	cfg       Config
	http      *http.Client
	storage   kv.Store
	log       *slog.Logger
	userAgent string

	mu             sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

// New creates a gateway client. The storage is consulted for the bearer token
// on each request; pass the same store the session store persists into.
func New(cfg Config, storage kv.Store, opts ...Option) (*Client, error) {
	if storage == nil {
		return nil, ErrMissingStorage
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: BaseURL is not a valid URL: %w", ErrInvalidConfig, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: BaseURL scheme must be http or https", ErrInvalidConfig)
	}

	c := &Client{
		baseURL:   base,
		cfg:       cfg,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		storage:   storage,
		log:       slog.New(slog.DiscardHandler),
		userAgent: "habitkit/" + habitkit.Version,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("gateway"))

	return c, nil
}

// OnUnauthorized registers the handler fired when a response reports the
// bearer token is no longer valid. Wire this to session.Store.Invalidate;
// the client itself never touches persisted storage on eviction.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// do issues a JSON request against the API. body and out may be nil. Non-2xx
// responses decode into *APIError; a 401 additionally fires the unauthorized
// handler before returning.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, payload)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := c.decodeError(resp, requestID)
		if apiErr.Unauthorized() {
			c.fireUnauthorized(ctx)
		}
		c.log.DebugContext(ctx, "request rejected",
			logger.Method(method),
			logger.Path(path),
			logger.StatusCode(resp.StatusCode),
			logger.RequestID(requestID),
		)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecodeResponse, err)
	}
	return nil
}

// currentToken reads the bearer token fresh from storage. Absence or read
// failure simply means the request goes out unauthenticated.
func (c *Client) currentToken(ctx context.Context) string {
	token, err := c.storage.Get(ctx, session.TokenKey)
	if err != nil {
		if !errors.Is(err, kv.ErrKeyNotFound) {
			c.log.DebugContext(ctx, "failed to read persisted token", logger.Error(err))
		}
		return ""
	}
	return token
}

func (c *Client) decodeError(resp *http.Response, requestID string) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Message
	}
	return apiErr
}

func (c *Client) fireUnauthorized(ctx context.Context) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
}
