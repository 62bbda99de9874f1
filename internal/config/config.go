package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/newtab/internal/errors"
	"github.com/vango-dev/newtab/pkg/store"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "newtab.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultTimeout is the default read and write timeout.
	DefaultTimeout = "10s"

	// DefaultMetricsPath is the default Prometheus endpoint.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "newtab"

	// DefaultTitle is the default page title.
	DefaultTitle = "New Tab"

	// DefaultPage is the default analytics page name.
	DefaultPage = "NEW_TAB"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// reservedPaths are routes the server owns.
var reservedPaths = []string{"/", "/ws", "/healthz"}

// Config represents the complete newtab.json configuration.
type Config struct {
	// Name is the application name.
	Name string `json:"name,omitempty"`

	// Title is the page title.
	Title string `json:"title,omitempty"`

	// Page is the analytics page name sent with user-events.
	Page string `json:"page,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Experiments contains the experiment source.
	Experiments ExperimentsConfig `json:"experiments,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Sites are the tiles shown on the page.
	Sites []SiteConfig `json:"sites,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// ReadTimeout is a Go duration string (e.g., "10s").
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout is a Go duration string (e.g., "10s").
	WriteTimeout string `json:"writeTimeout,omitempty"`
}

// ExperimentsConfig names where the experiment document lives.
type ExperimentsConfig struct {
	// Source is a file path, file:// URI or s3://bucket/key URI.
	// Empty means no experiment.
	Source string `json:"source,omitempty"`

	// Region overrides the AWS region for s3:// sources. Empty uses the
	// default AWS configuration (AWS_REGION, shared config files).
	Region string `json:"region,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled turns on the store metrics middleware and the endpoint.
	Enabled bool `json:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`

	// Subsystem is inserted between the namespace and the metric name.
	Subsystem string `json:"subsystem,omitempty"`

	// Labels are constant labels added to every metric.
	Labels map[string]string `json:"labels,omitempty"`

	// Buckets are the dispatch duration histogram buckets in seconds.
	// They must be strictly increasing. Empty uses the Prometheus defaults.
	Buckets []float64 `json:"buckets,omitempty"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `json:"path,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled turns on the store tracing middleware.
	Enabled bool `json:"enabled"`

	// TracerName is the instrumentation scope name.
	TracerName string `json:"tracerName,omitempty"`
}

// SiteConfig is one tile on the page.
type SiteConfig struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	BookmarkGUID string `json:"bookmarkGuid,omitempty"`
	Source       string `json:"source,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name:  DefaultNamespace,
		Title: DefaultTitle,
		Page:  DefaultPage,
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  DefaultTimeout,
			WriteTimeout: DefaultTimeout,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
			Path:      DefaultMetricsPath,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from the specified directory.
// It looks for newtab.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in values the file left empty. Booleans are taken
// as written.
func (c *Config) applyDefaults() {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Page == "" {
		c.Page = DefaultPage
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultTimeout
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	// Relative file sources resolve against the config directory.
	src := c.Experiments.Source
	if src != "" && !strings.Contains(src, "://") && !filepath.IsAbs(src) && c.Dir() != "" {
		c.Experiments.Source = filepath.Join(c.Dir(), src)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}

	for _, t := range [...]struct{ name, value string }{
		{"readTimeout", c.Server.ReadTimeout},
		{"writeTimeout", c.Server.WriteTimeout},
	} {
		if d, err := time.ParseDuration(t.value); err != nil || d < 0 {
			return errors.New("E103").
				WithDetail("server." + t.name + " is " + strconv.Quote(t.value))
		}
	}

	if c.Metrics.Enabled {
		p := c.Metrics.Path
		if !strings.HasPrefix(p, "/") || slices.Contains(reservedPaths, p) {
			return errors.New("E104").
				WithDetail("metrics.path is " + strconv.Quote(p))
		}
		for i := 1; i < len(c.Metrics.Buckets); i++ {
			if c.Metrics.Buckets[i] <= c.Metrics.Buckets[i-1] {
				return errors.New("E107").
					WithDetail(fmt.Sprintf("metrics.buckets[%d] is %g after %g", i, c.Metrics.Buckets[i], c.Metrics.Buckets[i-1]))
			}
		}
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Sites))
	for i, s := range c.Sites {
		if s.URL == "" {
			return errors.New("E105").
				WithDetail("sites[" + strconv.Itoa(i) + "] has no url")
		}
		if seen[s.URL] {
			return errors.New("E105").
				WithDetail("sites[" + strconv.Itoa(i) + "] repeats " + s.URL)
		}
		seen[s.URL] = true
	}
	return nil
}

// Address returns the address string for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the full URL for the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// Timeouts returns the parsed read and write timeouts. Call Validate first.
func (c *Config) Timeouts() (read, write time.Duration) {
	read, _ = time.ParseDuration(c.Server.ReadTimeout)
	write, _ = time.ParseDuration(c.Server.WriteTimeout)
	return read, write
}

// StoreSites converts the configured sites into store tiles.
func (c *Config) StoreSites() []store.Site {
	sites := make([]store.Site, 0, len(c.Sites))
	for _, s := range c.Sites {
		sites = append(sites, store.Site{
			URL:          s.URL,
			Title:        s.Title,
			BookmarkGUID: s.BookmarkGUID,
			Source:       s.Source,
		})
	}
	return sites
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, errors.New("E106").
			WithDetail("logLevel is " + strconv.Quote(level))
	}
	return l, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing newtab.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + startDir + " or any parent directory").
				WithSuggestion("Create " + ConfigFileName + " or pass --config")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
