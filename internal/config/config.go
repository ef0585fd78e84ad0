package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/scene"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "scene.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "scene.yaml"

	// DefaultPort is the default inspector port.
	DefaultPort = 7070

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultInterval is the default time between passes.
	DefaultInterval = "1s"

	// DefaultExportDir is the default local directory for frame reports.
	DefaultExportDir = "frames"
)

// Config represents the complete scene configuration.
type Config struct {
	// Root holds the layout options handed to the root of every frame.
	Root RootConfig `json:"root" yaml:"root"`

	// Log configures the process logger.
	Log LogConfig `json:"log" yaml:"log"`

	// Inspector configures the HTTP inspection server.
	Inspector InspectorConfig `json:"inspector" yaml:"inspector"`

	// Metrics configures Prometheus pass metrics.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Tracing configures OpenTelemetry pass spans.
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`

	// Export configures where frame reports are written.
	Export ExportConfig `json:"export" yaml:"export"`

	// Runtime configures the pass loop.
	Runtime RuntimeConfig `json:"runtime" yaml:"runtime"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RootConfig contains the initial layout options.
type RootConfig struct {
	TextSize  float64 `json:"textSize,omitempty" yaml:"textSize,omitempty"`
	Width     float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height    float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Direction string  `json:"direction,omitempty" yaml:"direction,omitempty"` // "column" or "row"
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is "text" or "json".
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// InspectorConfig contains inspection server settings.
type InspectorConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host,omitempty" yaml:"host,omitempty"`
	Port    int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty" yaml:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// ExportConfig contains frame export settings. A non-empty Bucket selects
// S3, otherwise reports go to Dir.
type ExportConfig struct {
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// RuntimeConfig contains pass loop settings.
type RuntimeConfig struct {
	// Passes is the number of passes to run. 0 runs until stopped.
	Passes int `json:"passes,omitempty" yaml:"passes,omitempty"`

	// Interval is the time between passes (e.g., "500ms").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Root: RootConfig{
			TextSize:  scene.DefaultTextSize,
			Direction: "column",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Inspector: InspectorConfig{
			Enabled: true,
			Host:    DefaultHost,
			Port:    DefaultPort,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "scene",
		},
		Tracing: TracingConfig{
			TracerName: "scene",
		},
		Export: ExportConfig{
			Dir:    DefaultExportDir,
			Prefix: "frames",
		},
		Runtime: RuntimeConfig{
			Interval: DefaultInterval,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for scene.json, then scene.yaml, then scene.yml.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "scene.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E121").
		WithDetail("No scene.json or scene.yaml found in " + dir).
		WithSuggestion("Run 'scene config init' to write a default configuration")
}

// LoadFile reads configuration from the specified file path. Files ending
// in .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No config file at " + path).
				WithSuggestion("Run 'scene config init' to write a default configuration")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveTo writes the configuration to the specified path, as YAML when the
// extension asks for it.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
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

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Root.TextSize == 0 {
		c.Root.TextSize = scene.DefaultTextSize
	}
	if c.Root.Direction == "" {
		c.Root.Direction = "column"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Inspector.Host == "" {
		c.Inspector.Host = DefaultHost
	}
	if c.Inspector.Port == 0 {
		c.Inspector.Port = DefaultPort
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "scene"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "scene"
	}

	if c.Export.Dir == "" {
		c.Export.Dir = DefaultExportDir
	}

	if c.Runtime.Interval == "" {
		c.Runtime.Interval = DefaultInterval
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return errors.New("E122").
			WithKey("inspector.port").
			WithDetail("Port must be between 0 and 65535")
	}
	if c.Root.TextSize < 0 || c.Root.Width < 0 || c.Root.Height < 0 {
		return errors.New("E122").
			WithKey("root").
			WithDetail("Sizes must not be negative")
	}
	switch c.Root.Direction {
	case "", "column", "row":
	default:
		return errors.New("E122").
			WithKey("root.direction").
			WithDetail("Direction must be \"column\" or \"row\", got " + strconv.Quote(c.Root.Direction))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return errors.New("E122").
			WithKey("log.format").
			WithDetail("Format must be \"text\" or \"json\"")
	}
	if _, err := c.level(); err != nil {
		return errors.New("E122").WithKey("log.level").Wrap(err)
	}
	if c.Runtime.Passes < 0 {
		return errors.New("E122").
			WithKey("runtime.passes").
			WithDetail("Passes must not be negative")
	}
	if _, err := c.Interval(); err != nil {
		return errors.New("E122").WithKey("runtime.interval").Wrap(err)
	}
	return nil
}

// InspectorAddress returns the listen address of the inspector.
func (c *Config) InspectorAddress() string {
	return c.Inspector.Host + ":" + strconv.Itoa(c.Inspector.Port)
}

// InspectorURL returns the base URL of the inspector.
func (c *Config) InspectorURL() string {
	return "http://" + c.InspectorAddress()
}

// Interval returns the parsed time between passes.
func (c *Config) Interval() (time.Duration, error) {
	if c.Runtime.Interval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Runtime.Interval)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Newf(errors.CategoryConfig, "interval %s is negative", c.Runtime.Interval)
	}
	return d, nil
}

// RootOptions returns the layout options handed to the root of every frame.
func (c *Config) RootOptions() scene.LayoutOptions {
	opts := scene.DefaultLayoutOptions()
	if c.Root.TextSize > 0 {
		opts.TextSize = c.Root.TextSize
	}
	opts.Width = c.Root.Width
	opts.Height = c.Root.Height
	if c.Root.Direction == "row" {
		opts.Direction = scene.Row
	}
	return opts
}

// ExportPath returns the absolute path of the local export directory.
func (c *Config) ExportPath() string {
	if filepath.IsAbs(c.Export.Dir) {
		return c.Export.Dir
	}
	return filepath.Join(c.Dir(), c.Export.Dir)
}

func (c *Config) level() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	err := lvl.UnmarshalText([]byte(c.Log.Level))
	return lvl, err
}

// Logger builds the process logger writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "scene.yml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// LoadOrDefault loads configuration from dir, falling back to defaults when
// no file exists there. Parse and validation errors are still returned.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}
