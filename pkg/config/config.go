package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quill/pkg/text"
)

// Config is the full application configuration.
type Config struct {
	Logger   LoggerConfig    `mapstructure:"logger"`
	Network  NetworkConfig   `mapstructure:"network"`
	Viewport ViewportConfig  `mapstructure:"viewport"`
	Fonts    text.FontConfig `mapstructure:"fonts"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	AddSource   bool   `mapstructure:"add_source"`
	ServiceName string `mapstructure:"service_name"`
	LogFile     string `mapstructure:"log_file"`
	MaxSize     int    `mapstructure:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	Compress    bool   `mapstructure:"compress"`
}

type NetworkConfig struct {
	// Timeout bounds a whole fetch. Zero disables it.
	Timeout  time.Duration `mapstructure:"timeout"`
	// CacheTTL keeps fetched pages in memory. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type ViewportConfig struct {
	Width      float64 `mapstructure:"width"`
	Height     float64 `mapstructure:"height"`
	ScrollStep float64 `mapstructure:"scroll_step"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "quill")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("network.timeout", 30*time.Second)
	v.SetDefault("network.cache_ttl", 5*time.Minute)

	v.SetDefault("viewport.width", 800.0)
	v.SetDefault("viewport.height", 600.0)
	v.SetDefault("viewport.scroll_step", 100.0)

	v.SetDefault("fonts.regular", "")
	v.SetDefault("fonts.bold", "")
	v.SetDefault("fonts.italic", "")
	v.SetDefault("fonts.bold_italic", "")
}

// New returns a viper instance with defaults and QUILL_* environment
// overrides. If path is empty, ./quill.yaml is read when present.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("quill")
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from path (or the default locations) and validates it.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.ScrollStep <= 0 {
		return fmt.Errorf("viewport.scroll_step must be positive, got %v", c.Viewport.ScrollStep)
	}
	if c.Network.Timeout < 0 {
		return fmt.Errorf("network.timeout must not be negative, got %v", c.Network.Timeout)
	}
	if c.Network.CacheTTL < 0 {
		return fmt.Errorf("network.cache_ttl must not be negative, got %v", c.Network.CacheTTL)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
