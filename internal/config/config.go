package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server     ServerConfig
	API        APIConfig
	Logger     LoggerConfig
	Security   SecurityConfig
	Storefront StorefrontConfig
}

type ServerConfig struct {
	Host            string        `default:"localhost"`
	Port            int           `default:"8084"`
	ReadTimeout     time.Duration `split_words:"true" default:"10s"`
	WriteTimeout    time.Duration `split_words:"true" default:"0s"`
	IdleTimeout     time.Duration `split_words:"true" default:"60s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"30s"`
}

// APIConfig points at the remote catalog API that owns products,
// click tracking, admin login and analytics.
type APIConfig struct {
	BaseURL string `split_words:"true" default:"http://127.0.0.1:5000/api"`
}

type LoggerConfig struct {
	Level  string `default:"info"`
	Format string `default:"json"`
}

type SecurityConfig struct {
	EnableRateLimit  bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRPS     int           `envconfig:"RATE_LIMIT_RPS" default:"100"`
	RateLimitBurst   int           `envconfig:"RATE_LIMIT_BURST" default:"10"`
	AllowedOrigins   []string      `split_words:"true" default:"http://localhost:8084"`
	TrustedProxies   []string      `split_words:"true" default:"127.0.0.1"`
	SessionSecret    string        `split_words:"true"`
	CookieSecure     bool          `split_words:"true" default:"false"`
	LoginMaxAttempts int           `split_words:"true" default:"5"`
	LoginWindow      time.Duration `split_words:"true" default:"1m"`
}

// StorefrontConfig carries the knobs of the page itself.
type StorefrontConfig struct {
	SiteName          string        `split_words:"true" default:"DealHub"`
	AdminCode         string        `split_words:"true" default:"112233"`
	ParticleCount     int           `split_words:"true" default:"20"`
	ScrollThreshold   int           `split_words:"true" default:"50"`
	CountdownInterval time.Duration `split_words:"true" default:"1s"`
	ToastDuration     time.Duration `split_words:"true" default:"2800ms"`
}

// Load reads an optional .env file and then the process environment.
// Variables are grouped by section, e.g. SERVER_PORT, API_BASE_URL,
// SECURITY_SESSION_SECRET, STOREFRONT_ADMIN_CODE.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	// zero disables the write deadline, which the countdown stream needs
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server write timeout must not be negative")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("API base URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	if c.Security.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive")
	}

	if c.Security.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive")
	}

	if len(c.Security.SessionSecret) < 32 {
		return fmt.Errorf("session secret must be at least 32 bytes")
	}

	if c.Security.LoginMaxAttempts <= 0 {
		return fmt.Errorf("login max attempts must be positive")
	}

	if c.Security.LoginWindow <= 0 {
		return fmt.Errorf("login window must be positive")
	}

	if strings.TrimSpace(c.Storefront.AdminCode) == "" {
		return fmt.Errorf("admin code cannot be empty")
	}

	if c.Storefront.ParticleCount < 0 {
		return fmt.Errorf("particle count must not be negative")
	}

	if c.Storefront.CountdownInterval <= 0 {
		return fmt.Errorf("countdown interval must be positive")
	}

	if c.Storefront.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive")
	}

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
