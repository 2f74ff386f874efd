package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	App      AppConfig      `mapstructure:"app"`
	Identity IdentityConfig `mapstructure:"identity"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	TimeoutSec    int    `mapstructure:"timeout_sec"` // 0 = no client timeout
	RatePerSecond int    `mapstructure:"rate_per_second"`
}

type AppConfig struct {
	URL        string `mapstructure:"url"`
	ComposeURL string `mapstructure:"compose_url"`
}

type IdentityConfig struct {
	FallbackFID int64 `mapstructure:"fallback_fid"`
}

type ServerConfig struct {
	Port            string `mapstructure:"port"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_sec"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Timeout returns the lookup client timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("api.base_url", "https://fc-pro-number-api.kasra.codes")
	v.SetDefault("api.timeout_sec", 0)
	v.SetDefault("api.rate_per_second", 0)
	v.SetDefault("app.url", "https://fc-pro-num.kasra.codes/")
	v.SetDefault("app.compose_url", "https://warpcast.com/~/compose")
	v.SetDefault("identity.fallback_fid", 573)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout_sec", 30)
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("FCPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// PORT is what most hosting platforms inject
	_ = v.BindEnv("server.port", "FCPRO_SERVER_PORT", "PORT")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("fcpro")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"api.base_url":    c.API.BaseURL,
		"app.url":         c.App.URL,
		"app.compose_url": c.App.ComposeURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	c.API.BaseURL = strings.TrimSuffix(c.API.BaseURL, "/")

	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("api.timeout_sec must be >= 0")
	}
	if c.API.RatePerSecond < 0 {
		return fmt.Errorf("api.rate_per_second must be >= 0")
	}
	if c.Identity.FallbackFID <= 0 {
		return fmt.Errorf("identity.fallback_fid must be > 0")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	return nil
}
