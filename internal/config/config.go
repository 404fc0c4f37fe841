// Package config handles configuration loading from a config file, environment variables and mounted secrets.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"aiswei_bridge/internal/auth"
)

// EnvPrefix is prepended to every environment variable, e.g. AISWEI_APP_KEY.
const EnvPrefix = "AISWEI"

// ErrMissingCredential is wrapped by Validate when a credential is empty.
var ErrMissingCredential = errors.New("missing credential")

// Config holds all configuration for the bridge.
type Config struct {
	// Pro user credentials
	AppKey    string `mapstructure:"app_key"`
	AppSecret string `mapstructure:"app_secret"`
	APIKey    string `mapstructure:"api_key"`
	Token     string `mapstructure:"token"`
	SN        string `mapstructure:"sn"`

	SecretsPath string `mapstructure:"secrets_path"`

	// API client
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Exporter mode
	MinScrapeInterval time.Duration `mapstructure:"min_scrape_interval"`

	// Logging configuration
	LogLevel  string `mapstructure:"log_level"` // debug, info, warn, error
	LogFormat string `mapstructure:"log_format"` // text, json
}

// LoadConfig reads the optional config file at path, applies AISWEI_*
// environment overrides and finally any mounted secret files.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	secrets, err := loadSecrets(cfg.SecretsPath)
	if err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}
	cfg.applySecrets(secrets)

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Every key needs a default so AutomaticEnv is honoured by Unmarshal.
	for _, k := range []string{"app_key", "app_secret", "api_key", "token", "sn"} {
		v.SetDefault(k, "")
	}
	v.SetDefault("secrets_path", defaultSecretsPath)
	v.SetDefault("base_url", "https://eu-api-genergal.aisweicloud.com")
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("min_scrape_interval", time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Credentials returns the API credentials.
func (c *Config) Credentials() auth.Credentials {
	return auth.Credentials{
		AppKey:    c.AppKey,
		AppSecret: c.AppSecret,
		APIKey:    c.APIKey,
		Token:     c.Token,
		SN:        c.SN,
	}
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	required := []struct {
		name, env, value string
	}{
		{"app key", "AISWEI_APP_KEY", c.AppKey},
		{"app secret", "AISWEI_APP_SECRET", c.AppSecret},
		{"api key", "AISWEI_API_KEY", c.APIKey},
		{"token", "AISWEI_TOKEN", c.Token},
		{"serial number", "AISWEI_SN", c.SN},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: %s is required (set %s or mount a secret)", ErrMissingCredential, r.name, r.env)
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}
	if c.RequestTimeout < time.Second {
		return errors.New("request timeout must be at least 1 second")
	}
	return nil
}
