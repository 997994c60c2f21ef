// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Session  SessionConfig
	Chart    ChartConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds file upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 32MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"33554432"`

	// MaxConcurrent is the maximum number of uploads parsed in parallel (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an upload slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`

	// PreviewRows is the number of rows shown after an upload (default: 5)
	PreviewRows int `env:"UPLOAD_PREVIEW_ROWS" default:"5"`
}

// SessionConfig holds settings for the per-browser dataset store.
type SessionConfig struct {
	// CookieName is the name of the session cookie (default: tabscope_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"tabscope_session"`

	// TTL is how long an idle session keeps its table (default: 2h)
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	// SweepInterval is how often idle sessions are evicted (default: 5m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"5m"`

	// CookieSecure marks the cookie Secure; enable behind TLS (default: false)
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" default:"false"`
}

// ChartConfig holds chart rendering settings.
type ChartConfig struct {
	// Width is the PNG width in pixels (default: 1000)
	Width int `env:"CHART_WIDTH" default:"1000"`

	// Height is the PNG height in pixels (default: 600)
	Height int `env:"CHART_HEIGHT" default:"600"`

	// HistogramBins is the number of histogram bins (default: 20)
	HistogramBins int `env:"CHART_HISTOGRAM_BINS" default:"20"`

	// KDEPoints is the number of grid points a density curve is evaluated on (default: 200)
	KDEPoints int `env:"CHART_KDE_POINTS" default:"200"`

	// MaxConcurrent is the maximum number of charts rendered in parallel (default: 4)
	MaxConcurrent int `env:"CHART_MAX_CONCURRENT" default:"4"`

	// EChartsAssetsHost is where the scatter plot loads echarts.min.js from
	EChartsAssetsHost string `env:"CHART_ECHARTS_ASSETS_HOST" default:"https://go-echarts.github.io/go-echarts-assets/assets/"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the upload endpoint (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return fmt.Sprintf(":%d", c.Port)
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
