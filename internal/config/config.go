// Package config loads jetrans settings from flags, environment, an optional
// config file and a .env file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/valpere/jetrans/internal/chat"
	"github.com/valpere/jetrans/internal/models"
)

const (
	EnvPrefix = "JETRANS"

	// CredentialEnv is the conventional variable for the API key.
	CredentialEnv = "OPENAI_API_KEY"

	// PlaceholderKey is sent when no key is configured; the endpoint will
	// reject it with an auth error.
	PlaceholderKey = "YOUR_OPENAI_API_KEY"

	BackendHTTP   = "http"
	BackendOpenAI = "openai"
)

// ErrCredentialMissing is reported as a warning; it never blocks startup.
var ErrCredentialMissing = fmt.Errorf("API key not set: set %s or %s_API_KEY", CredentialEnv, EnvPrefix)

var ErrUnknownBackend = errors.New("unknown backend")

type Config struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Backend string        `mapstructure:"backend"`
	Timeout time.Duration `mapstructure:"timeout"`
	Debug   bool          `mapstructure:"debug"`
	LogJSON bool          `mapstructure:"log_json"`
}

// Chat returns the client settings.
func (c *Config) Chat() chat.Config {
	return chat.Config{APIKey: c.APIKey, BaseURL: c.BaseURL, Timeout: c.Timeout}
}

// SetDefaults registers default values and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", chat.DefaultBaseURL)
	v.SetDefault("model", models.Default().ID)
	v.SetDefault("backend", BackendHTTP)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("debug", false)
	v.SetDefault("log_json", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", CredentialEnv)
}

// LoadDotEnv loads path into the process environment if it exists. Variables
// already set are not overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the config file named by v (if any) and decodes the result.
// A missing API key is replaced by PlaceholderKey and reported through
// ErrCredentialMissing together with a usable Config.
func Load(v *viper.Viper) (*Config, error) {
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		cfg.APIKey = PlaceholderKey
		return &cfg, ErrCredentialMissing
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := models.Lookup(c.Model); err != nil {
		return fmt.Errorf("invalid model: %w (choose one of %s)", err, strings.Join(models.IDs(), ", "))
	}
	switch c.Backend {
	case BackendHTTP, BackendOpenAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
