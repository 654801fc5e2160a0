package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./gomero.db" {
			t.Errorf("expected database path ./gomero.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 4064 {
			t.Errorf("expected server port 4064, got %d", config.Server.Port)
		}

		if config.Server.BasePath != "/api/v0" {
			t.Errorf("expected base path /api/v0, got %s", config.Server.BasePath)
		}

		if config.Callback.Port != 3000 {
			t.Errorf("expected callback port 3000, got %d", config.Callback.Port)
		}
	})

	t.Run("BaseURL", func(t *testing.T) {
		cfg := ServerConfig{Host: "omero.example.org", Port: 4064, BasePath: "/api/v0"}
		if got := cfg.BaseURL(); got != "http://omero.example.org:4064/api/v0" {
			t.Errorf("unexpected base URL: %s", got)
		}

		cfg.TLS = true
		cfg.Port = 0
		if got := cfg.BaseURL(); got != "https://omero.example.org/api/v0" {
			t.Errorf("unexpected TLS base URL: %s", got)
		}

		empty := ServerConfig{}
		if got := empty.BaseURL(); got != "http://localhost" {
			t.Errorf("unexpected default base URL: %s", got)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "omero.example.org"
port = 443
tls = true
base_path = "/api/v0"
web_url = "https://omero.example.org"

[credentials]
username = "demo"
session_file = "/tmp/session.json"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[callback]
host = "127.0.0.1"
port = 9999

[logging]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Host != "omero.example.org" {
			t.Errorf("expected host omero.example.org, got %s", config.Server.Host)
		}

		if !config.Server.TLS {
			t.Error("expected tls to be enabled")
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Callback.Port != 9999 {
			t.Errorf("expected callback port 9999, got %d", config.Callback.Port)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}
