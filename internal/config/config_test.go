package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECURITY_SESSION_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 8084 {
		t.Errorf("expected port 8084, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %s", cfg.Server.ReadTimeout)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:5000/api" {
		t.Errorf("unexpected API base URL %q", cfg.API.BaseURL)
	}
	if cfg.Storefront.AdminCode != "112233" {
		t.Errorf("expected admin code 112233, got %q", cfg.Storefront.AdminCode)
	}
	if cfg.Storefront.SiteName != "DealHub" {
		t.Errorf("expected site name DealHub, got %q", cfg.Storefront.SiteName)
	}
	if cfg.Storefront.ParticleCount != 20 {
		t.Errorf("expected 20 particles, got %d", cfg.Storefront.ParticleCount)
	}
	if cfg.Storefront.ToastDuration != 2800*time.Millisecond {
		t.Errorf("expected toast duration 2.8s, got %s", cfg.Storefront.ToastDuration)
	}
	if cfg.Security.LoginMaxAttempts != 5 {
		t.Errorf("expected 5 login attempts, got %d", cfg.Security.LoginMaxAttempts)
	}
	if got := cfg.Address(); got != "localhost:8084" {
		t.Errorf("Address() = %q, want localhost:8084", got)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SECURITY_SESSION_SECRET", testSecret)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("API_BASE_URL", "https://catalog.example.com/api")
	t.Setenv("SECURITY_RATE_LIMIT_RPS", "7")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STOREFRONT_ADMIN_CODE", "998877")
	t.Setenv("STOREFRONT_COUNTDOWN_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://catalog.example.com/api" {
		t.Errorf("unexpected API base URL %q", cfg.API.BaseURL)
	}
	if cfg.Security.RateLimitRPS != 7 {
		t.Errorf("expected RPS 7, got %d", cfg.Security.RateLimitRPS)
	}
	if len(cfg.Security.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %v", cfg.Security.AllowedOrigins)
	}
	if cfg.Storefront.AdminCode != "998877" {
		t.Errorf("expected admin code override, got %q", cfg.Storefront.AdminCode)
	}
	if cfg.Storefront.CountdownInterval != 250*time.Millisecond {
		t.Errorf("expected countdown interval 250ms, got %s", cfg.Storefront.CountdownInterval)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing session secret",
			env:     map[string]string{},
			wantErr: "session secret",
		},
		{
			name:    "bad port",
			env:     map[string]string{"SECURITY_SESSION_SECRET": testSecret, "SERVER_PORT": "70000"},
			wantErr: "server port",
		},
		{
			name:    "relative API URL",
			env:     map[string]string{"SECURITY_SESSION_SECRET": testSecret, "API_BASE_URL": "/api"},
			wantErr: "API base URL",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"SECURITY_SESSION_SECRET": testSecret, "LOGGER_LEVEL": "loud"},
			wantErr: "invalid log level",
		},
		{
			name:    "blank admin code",
			env:     map[string]string{"SECURITY_SESSION_SECRET": testSecret, "STOREFRONT_ADMIN_CODE": "   "},
			wantErr: "admin code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SECURITY_SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
