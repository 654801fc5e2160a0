package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Callback    CallbackConfig    `toml:"callback"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig describes the remote gateway to connect to.
type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	TLS      bool   `toml:"tls"`
	BasePath string `toml:"base_path"`
	WebURL   string `toml:"web_url"`
}

// CredentialsConfig contains login settings for the gateway.
type CredentialsConfig struct {
	Username    string      `toml:"username"`
	IceConfig   string      `toml:"ice_config"`
	SessionFile string      `toml:"session_file"`
	OAuth       OAuthConfig `toml:"oauth"`
}

// OAuthConfig contains OIDC client settings for browser-based sign-in.
type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
}

// DatabaseConfig contains local metadata cache settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CallbackConfig contains settings for the local OIDC callback listener.
type CallbackConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// BaseURL builds the gateway base URL from the server settings.
func (s ServerConfig) BaseURL() string {
	scheme := "http"
	if s.TLS {
		scheme = "https"
	}
	host := s.Host
	if host == "" {
		host = "localhost"
	}
	if s.Port > 0 {
		return fmt.Sprintf("%s://%s:%d%s", scheme, host, s.Port, s.BasePath)
	}
	return fmt.Sprintf("%s://%s%s", scheme, host, s.BasePath)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
