package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Credentials.YouTube.BaseURL != "https://www.googleapis.com/youtube/v3" {
			t.Errorf("expected youtube base URL https://www.googleapis.com/youtube/v3, got %s", config.Credentials.YouTube.BaseURL)
		}

		if config.Credentials.YouTube.APIKey != "" {
			t.Errorf("expected empty api key, got %s", config.Credentials.YouTube.APIKey)
		}

		if config.Playlist.PageSize != 50 || config.Playlist.MaxPages != 20 {
			t.Errorf("expected page_size 50 and max_pages 20, got %d and %d", config.Playlist.PageSize, config.Playlist.MaxPages)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
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

		if config.Server.StaticDir != DefaultConfig().Server.StaticDir {
			t.Errorf("created config static dir doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "127.0.0.1"
port = 8080

[credentials.youtube]
api_key = "test_api_key"

[playlist]
max_pages = 5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected addr 127.0.0.1:8080, got %s", config.Server.Addr())
		}

		if config.Credentials.YouTube.APIKey != "test_api_key" {
			t.Errorf("expected api_key test_api_key, got %s", config.Credentials.YouTube.APIKey)
		}

		if config.Playlist.MaxPages != 5 {
			t.Errorf("expected max_pages 5, got %d", config.Playlist.MaxPages)
		}

		if config.Playlist.PageSize != 50 {
			t.Errorf("expected page_size to keep default 50, got %d", config.Playlist.PageSize)
		}

		if config.Credentials.YouTube.BaseURL == "" {
			t.Error("expected base_url to keep its default")
		}
	})

	t.Run("LoadConfig with malformed file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("OverrideFromEnv", func(t *testing.T) {
		t.Setenv("YOUTUBE_API_KEY", "env_key")
		t.Setenv("PORT", "9000")
		t.Setenv("LOG_LEVEL", "debug")

		config := DefaultConfig()
		if err := config.OverrideFromEnv(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if config.Credentials.YouTube.APIKey != "env_key" {
			t.Errorf("expected api key env_key, got %s", config.Credentials.YouTube.APIKey)
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected port 9000, got %d", config.Server.Port)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
	})

	t.Run("OverrideFromEnv rejects non-numeric port", func(t *testing.T) {
		t.Setenv("PORT", "http")

		err := DefaultConfig().OverrideFromEnv()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "port out of range", mutate: func(c *Config) { c.Server.Port = 70000 }},
			{name: "page size above platform maximum", mutate: func(c *Config) { c.Playlist.PageSize = 51 }},
			{name: "zero max pages", mutate: func(c *Config) { c.Playlist.MaxPages = 0 }},
			{name: "base url not a url", mutate: func(c *Config) { c.Credentials.YouTube.BaseURL = "googleapis" }},
			{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("ResolveConfig", func(t *testing.T) {
		t.Run("missing file falls back to defaults", func(t *testing.T) {
			t.Setenv("YOUTUBE_API_KEY", "resolved_key")

			config, err := ResolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Credentials.YouTube.APIKey != "resolved_key" {
				t.Errorf("expected env api key, got %s", config.Credentials.YouTube.APIKey)
			}
		})

		t.Run("environment beats file", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[server]\nport = 8080\n"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			t.Setenv("PORT", "8081")

			config, err := ResolveConfig(configPath)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Server.Port != 8081 {
				t.Errorf("expected port 8081, got %d", config.Server.Port)
			}
		})

		t.Run("invalid file values fail validation", func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(configPath, []byte("[playlist]\npage_size = 500\n"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if _, err := ResolveConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}
