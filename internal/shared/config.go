package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Store    StoreConfig    `toml:"store"`
	Identity IdentityConfig `toml:"identity"`
	Server   ServerConfig   `toml:"server"`
	Watch    WatchConfig    `toml:"watch"`
}

// APIConfig contains the reservation API location and credentials.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// StoreConfig selects and configures the durable token store.
//
// Driver is one of "sqlite", "redis" or "memory".
type StoreConfig struct {
	Driver        string `toml:"driver"`
	Path          string `toml:"path"`
	MaxOpenConns  int    `toml:"max_open_conns"`
	MaxIdleConns  int    `toml:"max_idle_conns"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// IdentityConfig contains OAuth2 client credentials for the third-party identity provider.
type IdentityConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// ServerConfig contains the loopback callback server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// WatchConfig controls passive availability polling.
type WatchConfig struct {
	IntervalSeconds int `toml:"interval_seconds"`
}

// EnvOverrides holds values read from the process environment (and .env) that take
// precedence over the TOML file.
type EnvOverrides struct {
	BaseURL     string `env:"API_BASE_URL"`
	APIKey      string `env:"API_KEY"`
	StoreDriver string `env:"COWORK_STORE_DRIVER"`
	StorePath   string `env:"COWORK_DB_PATH"`
	RedisAddr   string `env:"REDIS_ADDR"`
}

// Timeout returns the HTTP client timeout, defaulting to 10 seconds.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Interval returns the polling interval, defaulting to 30 seconds.
func (c WatchConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// Addr returns the host:port pair the callback server listens on.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes the config as TOML and writes it to path.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnv loads the given dotenv files (".env" when none are named) into the process
// environment and parses the overrides. Missing dotenv files are not an error.
func LoadEnv(files ...string) (*EnvOverrides, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}

	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return nil, fmt.Errorf("failed to load dotenv: %w", err)
		}
	}

	var overrides EnvOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return &overrides, nil
}

// Apply copies every non-empty override onto the config.
func (o *EnvOverrides) Apply(config *Config) {
	if o == nil || config == nil {
		return
	}
	if o.BaseURL != "" {
		config.API.BaseURL = o.BaseURL
	}
	if o.APIKey != "" {
		config.API.APIKey = o.APIKey
	}
	if o.StoreDriver != "" {
		config.Store.Driver = o.StoreDriver
	}
	if o.StorePath != "" {
		config.Store.Path = o.StorePath
	}
	if o.RedisAddr != "" {
		config.Store.RedisAddr = o.RedisAddr
	}
}
