package gateway

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds gateway client configuration.
type Config struct {
	// BaseURL is the API root including the path prefix, e.g.
	// http://localhost:8080/api.
	BaseURL string `env:"HABITGRID_API_URL" envDefault:"http://localhost:8080/api"`
	// RequestTimeout bounds each request including body read. Zero means no
	// client-side timeout; cancellation is then entirely up to the caller's
	// context.
	RequestTimeout time.Duration `env:"HABITGRID_REQUEST_TIMEOUT" envDefault:"0"`
	// StreamPath is the websocket endpoint for the real-time notification
	// feed, resolved against the BaseURL host.
	StreamPath string `env:"HABITGRID_STREAM_PATH" envDefault:"/ws/notifications"`
}

// Option is a functional option for configuring the gateway client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to add a custom
// transport or TLS configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for request-level diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUserAgent overrides the default habitkit User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}
