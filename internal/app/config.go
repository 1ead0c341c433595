package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the projman backend.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Email      EmailConfig      `mapstructure:"email"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port         int             `mapstructure:"port"`
	LogLevel     string          `mapstructure:"log_level"`
	Environment  string          `mapstructure:"environment"`
	BaseURL      string          `mapstructure:"base_url"`
	CookieDomain string          `mapstructure:"cookie_domain"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// IsProduction reports whether the server runs in production mode. Session
// cookies are marked Secure only then, so local HTTP setups keep working.
func (c ServerConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// RateLimitConfig controls the fixed-window request limiter.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Max     int           `mapstructure:"max"`
	Window  time.Duration `mapstructure:"window"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// AuthConfig captures all authentication-related settings.
type AuthConfig struct {
	JWT    JWTSettings   `mapstructure:"jwt"`
	Tokens TokenSettings `mapstructure:"tokens"`
	Gate   GateSettings  `mapstructure:"gate"`
}

// JWTSettings configures signed session tokens.
type JWTSettings struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"session_token_ttl"`
}

// TokenSettings bounds the side-channel token lifetimes.
type TokenSettings struct {
	ResetTTL        time.Duration `mapstructure:"reset_ttl"`
	VerificationTTL time.Duration `mapstructure:"verification_ttl"`
}

// GateSettings configure the request gate's route tables and redirects.
type GateSettings struct {
	LoginPath             string   `mapstructure:"login_path"`
	AuthenticatedHome     string   `mapstructure:"authenticated_home"`
	RedirectAuthenticated bool     `mapstructure:"redirect_authenticated"`
	ProtectedPrefixes     []string `mapstructure:"protected_prefixes"`
	AuthPrefixes          []string `mapstructure:"auth_prefixes"`
}

// EmailConfig captures outbound email settings.
type EmailConfig struct {
	SMTP SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig defines SMTP dialer settings for sending email.
type SMTPConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// MonitoringConfig enables metrics endpoints.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig toggles the metrics endpoint.
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("PROJMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.base_url", "http://localhost:8000")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.max", 100)
	v.SetDefault("server.rate_limit.window", "1m")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/projman.sqlite")

	v.SetDefault("auth.jwt.issuer", "projman")
	v.SetDefault("auth.jwt.session_token_ttl", "168h") // 7 days
	v.SetDefault("auth.tokens.reset_ttl", "1h")
	v.SetDefault("auth.tokens.verification_ttl", "24h")
	v.SetDefault("auth.gate.login_path", "/login")
	v.SetDefault("auth.gate.authenticated_home", "/dashboard")
	v.SetDefault("auth.gate.redirect_authenticated", false)

	v.SetDefault("email.smtp.enabled", false)
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout", "10s")

	v.SetDefault("monitoring.prometheus.enabled", true)
	v.SetDefault("monitoring.prometheus.endpoint", "/metrics")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
