// Package config provides configuration types and defaults for giterra.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. GITERRA_PLANET_SEGMENT.
const EnvPrefix = "GITERRA"

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Telemetry exporters.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration options for giterra.
type Config struct {
	Planet     PlanetConfig     `mapstructure:"planet"`
	Generation GenerationConfig `mapstructure:"generation"`
	Git        GitConfig        `mapstructure:"git"`
	Output     OutputConfig     `mapstructure:"output"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Server     ServerConfig     `mapstructure:"server"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Log        LogConfig        `mapstructure:"log"`
}

// PlanetConfig holds planet geometry options.
type PlanetConfig struct {
	Radius  float64 `mapstructure:"radius"`  // Surface radius, must be > 0
	Segment int     `mapstructure:"segment"` // Octant index in [0,7]
}

// GenerationConfig holds generation options.
type GenerationConfig struct {
	// Seed makes scatter placement reproducible. Zero draws a fresh seed,
	// which is reported in the output.
	Seed int64 `mapstructure:"seed"`
}

// GitConfig holds options for reading commits from a repository.
type GitConfig struct {
	Limit   int           `mapstructure:"limit"`
	Ref     string        `mapstructure:"ref"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds rendering options.
type OutputConfig struct {
	Format string `mapstructure:"format"` // json, yaml or text
}

// WatchConfig holds options for generate --watch.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// ServerConfig holds options for the serve command.
type ServerConfig struct {
	Addr string `mapstructure:"addr"` // Listen address, host:port
}

// TelemetryConfig holds tracing options.
type TelemetryConfig struct {
	Exporter string `mapstructure:"exporter"` // none, stdout or otlp
	Endpoint string `mapstructure:"endpoint"` // otlp gRPC endpoint, host:port
}

// LogConfig holds logging options.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Planet: PlanetConfig{
			Radius:  100,
			Segment: 0,
		},
		Git: GitConfig{
			Limit:   50,
			Timeout: 5 * time.Second,
		},
		Output: OutputConfig{
			Format: FormatJSON,
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Telemetry: TelemetryConfig{
			Exporter: ExporterNone,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers Defaults() with v and enables GITERRA_* environment
// overrides.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("planet.radius", d.Planet.Radius)
	v.SetDefault("planet.segment", d.Planet.Segment)
	v.SetDefault("generation.seed", d.Generation.Seed)
	v.SetDefault("git.limit", d.Git.Limit)
	v.SetDefault("git.ref", d.Git.Ref)
	v.SetDefault("git.timeout", d.Git.Timeout)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("telemetry.exporter", d.Telemetry.Exporter)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("log.level", d.Log.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg for errors.
func Validate(cfg Config) error {
	if !(cfg.Planet.Radius > 0) {
		return fmt.Errorf("%w: planet.radius must be > 0, got %v", ErrInvalidConfig, cfg.Planet.Radius)
	}
	if cfg.Planet.Segment < 0 || cfg.Planet.Segment > 7 {
		return fmt.Errorf("%w: planet.segment must be in [0,7], got %d", ErrInvalidConfig, cfg.Planet.Segment)
	}
	if cfg.Git.Limit < 0 {
		return fmt.Errorf("%w: git.limit must be >= 0, got %d", ErrInvalidConfig, cfg.Git.Limit)
	}
	if cfg.Git.Timeout < 0 {
		return fmt.Errorf("%w: git.timeout must be >= 0, got %s", ErrInvalidConfig, cfg.Git.Timeout)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must be >= 0, got %s", ErrInvalidConfig, cfg.Watch.Debounce)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", ErrInvalidConfig)
	}

	switch cfg.Output.Format {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("%w: output.format must be json, yaml or text, got %q", ErrInvalidConfig, cfg.Output.Format)
	}

	switch cfg.Telemetry.Exporter {
	case ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if cfg.Telemetry.Endpoint == "" {
			return fmt.Errorf("%w: telemetry.endpoint is required for the otlp exporter", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: telemetry.exporter must be none, stdout or otlp, got %q", ErrInvalidConfig, cfg.Telemetry.Exporter)
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/giterra/config.yaml, falling
// back to ~/.config/giterra/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "giterra", "config.yaml"), nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Giterra Configuration

planet:
  radius: 100   # Planet surface radius in world units
  segment: 0    # Octant to generate, 0-3 upper hemisphere, 4-7 lower

generation:
  # Seed for scatter placement. 0 picks a fresh seed each run;
  # the seed used is reported in the output so a run can be replayed.
  seed: 0

# Reading commits from a repository (generate --repo)
git:
  limit: 50     # Most recent commits to read
  ref: ""       # Branch, tag or commit; empty means HEAD
  timeout: 5s

output:
  format: json  # json, yaml or text

watch:
  debounce: 250ms  # Quiet period before regenerating in --watch mode

server:
  addr: 127.0.0.1:8080  # Listen address for giterra serve

telemetry:
  exporter: none   # none, stdout or otlp
  # endpoint: localhost:4317

log:
  level: info      # debug, info, warn, error

# Every key can be overridden with a GITERRA_ environment variable,
# e.g. GITERRA_PLANET_SEGMENT=5 or GITERRA_OUTPUT_FORMAT=yaml
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
