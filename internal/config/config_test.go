package config

import (
	"strings"
	"testing"
	"time"

	"resumelens/internal/analysis"
)

func validConfig() *Config {
	return &Config{
		Analysis: analysis.DefaultConfig(),
		Server: ServerConfig{
			Host: "localhost",
			Port: "8080",
			RateLimit: RateLimitConfig{
				Enabled:        true,
				RequestsPerMin: 60,
				BurstCapacity:  10,
				Window:         time.Minute,
			},
		},
		App: AppConfig{
			LogLevel:         "info",
			DefaultFormat:    "text",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      10 * 1024 * 1024,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "port",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.App.LogLevel = "verbose" },
			wantErr: "log level",
		},
		{
			name:    "default format unsupported",
			mutate:  func(c *Config) { c.App.DefaultFormat = "xml" },
			wantErr: "format",
		},
		{
			name:    "weights do not sum to one",
			mutate:  func(c *Config) { c.Analysis.KeywordWeight = 0.9 },
			wantErr: "weights",
		},
		{
			name:    "tls server mode without cert",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "server" },
			wantErr: "certFile",
		},
		{
			name:    "invalid tls mode",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "mutual" },
			wantErr: "TLS mode",
		},
		{
			name:    "rate limit with zero requests per minute",
			mutate:  func(c *Config) { c.Server.RateLimit.RequestsPerMin = 0 },
			wantErr: "requestsPerMin",
		},
		{
			name: "storage enabled without path",
			mutate: func(c *Config) {
				c.Storage.Enabled = true
				c.Storage.Path = ""
			},
			wantErr: "storage path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Analysis.MinResumeWords != 100 || cfg.Analysis.MinIndicatorHits != 5 {
		t.Errorf("analysis gate defaults = %d words / %d indicators",
			cfg.Analysis.MinResumeWords, cfg.Analysis.MinIndicatorHits)
	}
	if cfg.Analysis.KeywordWeight != 0.40 {
		t.Errorf("keyword weight default = %v, want 0.40", cfg.Analysis.KeywordWeight)
	}
}
