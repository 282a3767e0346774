package session

import "log/slog"

// Config holds session store configuration.
type Config struct {
	Logger *slog.Logger
}

func defaultConfig() *Config {
	return &Config{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Option is a functional option for configuring the session store.
type Option func(*Config)

// WithLogger sets the logger used for lifecycle events. The store logs state
// transitions at info level and recovered storage errors at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Config) {
		if log != nil {
			c.Logger = log
		}
	}
}
