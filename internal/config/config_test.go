package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RIMUN_API_URL", "RIMUN_HTTP_TIMEOUT", "ENVIRONMENT", "LOG_LEVEL", "PORT"} {
		// t.Setenv registers the restore, Unsetenv then clears it for this test
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}

func TestNewConfig(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unsetAll(t)

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig returned error: %v", err)
		}

		if cfg.APIURL != "http://127.0.0.1:8081" {
			t.Fatalf("unexpected default API URL: %q", cfg.APIURL)
		}
		if cfg.HTTPTimeout != 0 {
			t.Fatalf("expected no default timeout, got %s", cfg.HTTPTimeout)
		}
		if cfg.Environment != "dev" || cfg.LogLevel != "info" || cfg.Port != 8080 {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		unsetAll(t)
		t.Setenv("RIMUN_API_URL", "https://api.rimun.example")
		t.Setenv("RIMUN_HTTP_TIMEOUT", "5s")
		t.Setenv("ENVIRONMENT", "prod")
		t.Setenv("PORT", "9090")

		cfg, err := NewConfig()
		if err != nil {
			t.Fatalf("NewConfig returned error: %v", err)
		}

		if cfg.APIURL != "https://api.rimun.example" {
			t.Fatalf("unexpected API URL: %q", cfg.APIURL)
		}
		if cfg.HTTPTimeout != 5*time.Second {
			t.Fatalf("expected 5s timeout, got %s", cfg.HTTPTimeout)
		}
		if cfg.Environment != "prod" || cfg.Port != 9090 {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			key, value, wantErr string
		}{
			{"RIMUN_API_URL", "127.0.0.1:8081", "absolute http(s) URL"},
			{"RIMUN_API_URL", "ftp://files.example", "absolute http(s) URL"},
			{"ENVIRONMENT", "local", "invalid environment"},
			{"PORT", "70000", "port must be between"},
			{"RIMUN_HTTP_TIMEOUT", "-1s", "must not be negative"},
		}
		for _, tt := range tests {
			unsetAll(t)
			t.Setenv(tt.key, tt.value)

			_, err := NewConfig()
			if err == nil {
				t.Fatalf("%s=%s: expected error", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("%s=%s: error %q does not mention %q", tt.key, tt.value, err, tt.wantErr)
			}
		}
	})
}

func TestLoad_DoesNotValidate(t *testing.T) {
	unsetAll(t)
	t.Setenv("RIMUN_API_URL", "not a url")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "not a url" {
		t.Fatalf("unexpected API URL: %q", cfg.APIURL)
	}

	cfg.APIURL = "http://127.0.0.1:9000"
	if err := cfg.Validate(); err != nil {
		t.Errorf("override should validate: %v", err)
	}
}
