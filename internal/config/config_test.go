package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_RequiresAPIBaseURL(t *testing.T) {
	os.Unsetenv("API_BASE_URL")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when API_BASE_URL is missing")
	}
}

func TestLoad_WithAPIBaseURL(t *testing.T) {
	os.Setenv("API_BASE_URL", "http://localhost:8000/api/")
	defer os.Unsetenv("API_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.APIBaseURL)
	}

	if cfg.Port != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.Port)
	}

	if cfg.ListLimit != 100 {
		t.Errorf("expected default list limit 100, got %d", cfg.ListLimit)
	}

	if cfg.APITimeout() != 10*time.Second {
		t.Errorf("expected default API timeout 10s, got %s", cfg.APITimeout())
	}
}

func TestConfig_IsDev(t *testing.T) {
	c := &Config{Env: "development"}
	if !c.IsDev() {
		t.Error("expected IsDev() to return true for development")
	}

	c.Env = "production"
	if c.IsDev() {
		t.Error("expected IsDev() to return false for production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	c := &Config{Env: "production"}
	if !c.IsProduction() {
		t.Error("expected IsProduction() to return true for production")
	}

	c.Env = "development"
	if c.IsProduction() {
		t.Error("expected IsProduction() to return false for development")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid http", Config{APIBaseURL: "http://localhost:8000/api", ListLimit: 100}, false},
		{"valid https", Config{APIBaseURL: "https://clinic.example.com/api", ListLimit: 50}, false},
		{"bad scheme", Config{APIBaseURL: "ftp://localhost/api", ListLimit: 100}, true},
		{"relative url", Config{APIBaseURL: "/api", ListLimit: 100}, true},
		{"zero list limit", Config{APIBaseURL: "http://localhost:8000/api", ListLimit: 0}, true},
		{"tls without cert", Config{APIBaseURL: "http://localhost:8000/api", ListLimit: 100, TLSEnabled: true, TLSKeyFile: "k.pem"}, true},
		{"tls without key", Config{APIBaseURL: "http://localhost:8000/api", ListLimit: 100, TLSEnabled: true, TLSCertFile: "c.pem"}, true},
		{"tls complete", Config{APIBaseURL: "http://localhost:8000/api", ListLimit: 100, TLSEnabled: true, TLSCertFile: "c.pem", TLSKeyFile: "k.pem"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
