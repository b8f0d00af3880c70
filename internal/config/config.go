package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Engine  EngineConfig  `yaml:"engine" envconfig:"ENGINE"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// EngineConfig contains the dividend engine knobs: projection bounds,
// accepted date formats, and the presentation palette.
type EngineConfig struct {
	MaxHorizonYears     int      `yaml:"max_horizon_years" envconfig:"MAX_HORIZON_YEARS" default:"30" validate:"min=1"`
	DefaultHorizonYears int      `yaml:"default_horizon_years" envconfig:"DEFAULT_HORIZON_YEARS" default:"15" validate:"min=1"`
	DefaultGrowthRate   float64  `yaml:"default_growth_rate" envconfig:"DEFAULT_GROWTH_RATE" default:"0.04"`
	PaymentsPerYear     int      `yaml:"payments_per_year" envconfig:"PAYMENTS_PER_YEAR" default:"4" validate:"min=1"`
	DateFormats         []string `yaml:"date_formats" envconfig:"DATE_FORMATS" default:"2006-01-02,2006/01/02,02/01/2006"`
	Palette             []string `yaml:"palette" envconfig:"PALETTE" default:"#636EFA,#EF553B,#00CC96,#AB63FA,#FFA15A,#19D3F3,#FF6692,#B6E880,#FF97FF,#FECB52" validate:"min=1"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	DataFile   string `yaml:"data_file" envconfig:"DATA_FILE" default:"data/dividend_data.csv"`
}

var validate = validator.New()

// Load loads configuration from environment variables with the DIVI prefix,
// then overlays the optional YAML config file, then validates the result.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile loads configuration using the given YAML file as the overlay.
// A missing file is not an error; the env/default configuration is used.
func LoadFromFile(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DIVI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Engine.DefaultHorizonYears > c.Engine.MaxHorizonYears {
		return fmt.Errorf("default horizon %d exceeds max horizon %d",
			c.Engine.DefaultHorizonYears, c.Engine.MaxHorizonYears)
	}
	return nil
}

// configFilePath returns the config file location, overridable via
// DIVI_CONFIG_FILE.
func configFilePath() string {
	if path := os.Getenv("DIVI_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
