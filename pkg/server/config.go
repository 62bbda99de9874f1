package server

import (
	"net/http"
	"time"
)

// Config holds server configuration.
type Config struct {
	// Address is the listen address (default ":3000").
	Address string

	// Title is the page title (default "New Tab").
	Title string

	// Page is the analytics page name sent with user-events
	// (default "NEW_TAB").
	Page string

	// HTTP timeouts.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration

	// SocketReadTimeout closes a socket that sends nothing for this long
	// (default 5m).
	SocketReadTimeout time.Duration

	// MaxMessageSize limits incoming socket messages (default 4KB).
	MaxMessageSize int64

	// MaxViews bounds the number of renderings whose handlers are kept.
	// The oldest view is dropped first (default 1024).
	MaxViews int

	// MetricsPath is where MetricsHandler is mounted. Empty disables it.
	MetricsPath string

	// MetricsHandler defaults to promhttp.Handler().
	MetricsHandler http.Handler

	// CheckOrigin validates the socket's Origin header.
	// Default: same host only.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":3000",
		Title:             "New Tab",
		Page:              "NEW_TAB",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		SocketReadTimeout: 5 * time.Minute,
		MaxMessageSize:    4 * 1024,
		MaxViews:          1024,
		MetricsPath:       "/metrics",
	}
}

// withDefaults fills unset fields from DefaultConfig. MetricsPath is
// taken as given.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.Page == "" {
		out.Page = d.Page
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = d.IdleTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.SocketReadTimeout == 0 {
		out.SocketReadTimeout = d.SocketReadTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.MaxViews <= 0 {
		out.MaxViews = d.MaxViews
	}
	return &out
}
