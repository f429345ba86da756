package triage

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// regions maps a Coralogix region name to its incidents gRPC endpoint.
var regions = map[string]string{
	"us1": "ng-api-grpc.us1.coralogix.com:443",
	"us2": "ng-api-grpc.us2.coralogix.com:443",
	"eu1": "ng-api-grpc.eu1.coralogix.com:443",
	"eu2": "ng-api-grpc.eu2.coralogix.com:443",
	"ap1": "ng-api-grpc.ap1.coralogix.com:443",
	"ap2": "ng-api-grpc.ap2.coralogix.com:443",
	"ap3": "ng-api-grpc.ap3.coralogix.com:443",
}

// RegionEndpoint resolves a region name to its gRPC endpoint. Unknown
// regions are a ConfigError — caught before any network activity.
func RegionEndpoint(region string) (string, error) {
	endpoint, ok := regions[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return "", &ConfigError{
			Field:  "region",
			Value:  region,
			Reason: "must be one of: " + strings.Join(RegionNames(), ", "),
		}
	}
	return endpoint, nil
}

// RegionNames returns all known region names, sorted.
func RegionNames() []string {
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config holds the entire cxtriage configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Batch   BatchConfig   `yaml:"batch"`
	Audit   AuditConfig   `yaml:"audit"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig holds Coralogix API access settings.
type APIConfig struct {
	Region      string        `yaml:"region"`
	Key         string        `yaml:"key"`
	CallTimeout time.Duration `yaml:"call_timeout"`
	MaxPages    int           `yaml:"max_pages"`
}

// BatchConfig holds batch sizing policy. The two sizes are policy knobs,
// not different algorithms: ack/resolve runs use Size, the grouped summary
// run uses SummarySize.
type BatchConfig struct {
	Size        int `yaml:"size"`
	SummarySize int `yaml:"summary_size"`
	WindowHours int `yaml:"window_hours"`
}

// AuditConfig holds optional NATS audit publishing settings. Disabled
// unless a URL is configured.
type AuditConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sane defaults — zero-config works as
// long as an API key arrives via flag or environment.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Region:      "eu1",
			CallTimeout: 60 * time.Second,
			MaxPages:    1000,
		},
		Batch: BatchConfig{
			Size:        10,
			SummarySize: 50,
			WindowHours: 24,
		},
		Audit: AuditConfig{
			Subject: "cxtriage.runs",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.API.Key == "" {
		if envKey := os.Getenv("CXTRIAGE_API_KEY"); envKey != "" {
			cfg.API.Key = envKey
		}
	}

	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for fatal problems. All violations are
// reported, not just the first.
func (c *Config) Validate() []error {
	var errs []error

	if _, err := RegionEndpoint(c.API.Region); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Size <= 0 {
		errs = append(errs, &ConfigError{
			Field:  "batch.size",
			Value:  fmt.Sprintf("%d", c.Batch.Size),
			Reason: "must be positive",
		})
	}
	if c.Batch.SummarySize <= 0 {
		errs = append(errs, &ConfigError{
			Field:  "batch.summary_size",
			Value:  fmt.Sprintf("%d", c.Batch.SummarySize),
			Reason: "must be positive",
		})
	}
	if c.Batch.WindowHours <= 0 {
		errs = append(errs, &ConfigError{
			Field:  "batch.window_hours",
			Value:  fmt.Sprintf("%d", c.Batch.WindowHours),
			Reason: "must be positive",
		})
	}
	if c.API.MaxPages <= 0 {
		errs = append(errs, &ConfigError{
			Field:  "api.max_pages",
			Value:  fmt.Sprintf("%d", c.API.MaxPages),
			Reason: "must be positive",
		})
	}

	return errs
}

// LogLevel returns the normalized log level string.
func (c *Config) LogLevel() string {
	return strings.ToLower(c.Logging.Level)
}

// NewLogger builds the zerolog logger described by the logging config.
// Console output goes to stderr so stdout stays clean for tables and JSON.
func (c *Config) NewLogger() zerolog.Logger {
	var logger zerolog.Logger
	if c.Logging.Format == "json" {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	switch c.LogLevel() {
	case "debug":
		logger = logger.Level(zerolog.DebugLevel)
	case "warn":
		logger = logger.Level(zerolog.WarnLevel)
	case "error":
		logger = logger.Level(zerolog.ErrorLevel)
	default:
		logger = logger.Level(zerolog.InfoLevel)
	}

	return logger
}
