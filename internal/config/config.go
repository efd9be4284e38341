package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
	Server   ServerConfig
}

// APIConfig points at the storefront service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	CDNURL  string        `mapstructure:"cdn_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds sqlite settings for the order journal.
type DatabaseConfig struct {
	Path string
}

// LogConfig controls the log file. The terminal belongs to the TUI.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Currency string
	Language string
}

// ServerConfig holds settings of the bundled demo service.
type ServerConfig struct {
	Addr string
}

// Load reads configuration from file and env. Env var overrides use prefix STOREFRONT_.
func Load() (Config, error) {
	v := viper.New()

	home := os.Getenv("HOME")
	v.SetDefault("api.base_url", "http://localhost:8085/api/weblarek")
	v.SetDefault("api.cdn_url", "http://localhost:8085/content/weblarek")
	v.SetDefault("api.timeout", 10*time.Second)
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "storefront", "orders.db"))
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "storefront", "storefront.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.currency", "synapses")
	v.SetDefault("ui.language", "en")
	v.SetDefault("server.addr", ":8085")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("STOREFRONT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "storefront"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	return c, nil
}

// Path returns the config file Load reads and Save writes.
func Path() string {
	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "storefront", "config.toml")
}

// Save writes cfg to the config file, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "mkdir config dir")
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.cdn_url", cfg.API.CDNURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.currency", cfg.UI.Currency)
	v.Set("ui.language", cfg.UI.Language)
	v.Set("server.addr", cfg.Server.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
