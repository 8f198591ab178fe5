// Package config loads service configuration from defaults, an optional
// YAML file and VIDEOPLAYER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from environment variables; "__" separates levels,
	// e.g. VIDEOPLAYER_SERVER__PORT sets server.port.
	EnvPrefix = "VIDEOPLAYER_"

	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "CONFIG_PATH"

	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// DefaultConfigPaths are tried in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/videoplayer/config.yaml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Catalog  CatalogConfig  `koanf:"catalog"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Auth     AuthConfig     `koanf:"auth"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	RateLimitRPS    int           `koanf:"rate_limit_rps" validate:"min=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type CatalogConfig struct {
	Source string `koanf:"source" validate:"oneof=builtin file postgres"`
	Path   string `koanf:"path" validate:"required_if=Source file"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// RedisConfig controls event publishing. An empty URL disables it.
type RedisConfig struct {
	URL     string `koanf:"url"`
	Channel string `koanf:"channel" validate:"required"`
}

// AuthConfig guards moderation endpoints. An empty secret disables the guard.
type AuthConfig struct {
	JWTSecret     string `koanf:"jwt_secret"`
	ModeratorRole string `koanf:"moderator_role" validate:"required"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3008,
			RateLimitRPS:    20,
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Catalog: CatalogConfig{
			Source: SourceBuiltin,
		},
		Redis: RedisConfig{
			Channel: "broadcast",
		},
		Auth: AuthConfig{
			ModeratorRole: "moderator",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. path may be empty, in which case
// CONFIG_PATH and DefaultConfigPaths are consulted.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := splitList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints and the rules spanning sections.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Catalog.Source == SourcePostgres && c.Database.URL == "" {
		return errors.New("database.url is required when catalog.source is postgres")
	}
	return nil
}

func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitList turns a comma separated string (as set from the environment)
// into a list.
func splitList(k *koanf.Koanf, path string) error {
	raw, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var items []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	if err := k.Set(path, items); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}
