package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	OpenAI     OpenAIConfig     `mapstructure:"openai" validate:"required"`
	Email      EmailConfig      `validate:"required"`
	Sentry     SentryConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required,oneof=local api aws_lambda_api"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	// URL takes precedence over the individual connection fields when set
	URL                    string `mapstructure:"url"`
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	AutoMigrate            bool   `mapstructure:"auto_migrate"`
}

type AuthConfig struct {
	Provider    types.AuthProvider `validate:"required,oneof=email supabase"`
	Secret      string             `validate:"required"`
	TokenTTL    time.Duration      `mapstructure:"token_ttl"`
	AdminEmails []string           `mapstructure:"admin_emails"`
	Supabase    SupabaseConfig
}

type SupabaseConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
}

type OpenAIConfig struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `validate:"required"`
	MaxCompletionTokens int    `mapstructure:"max_completion_tokens" validate:"gt=0"`
	Timeout             time.Duration
}

type EmailConfig struct {
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address" validate:"required"`
	ReplyTo     string `mapstructure:"reply_to"`
	Timeout     time.Duration
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled bool
}

type RateLimitConfig struct {
	GeneratePerMinute int `mapstructure:"generate_per_minute"`
	Burst             int
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoiceai")

	v.SetEnvPrefix("INVOICEAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)
	bindWellKnownEnv(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 30)
	v.SetDefault("auth.provider", string(types.AuthProviderEmail))
	v.SetDefault("auth.token_ttl", 7*24*time.Hour)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_completion_tokens", 2048)
	v.SetDefault("openai.timeout", 60*time.Second)
	v.SetDefault("email.from_address", "InvoiceAI <noreply@invoiceai.com>")
	v.SetDefault("email.timeout", 15*time.Second)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("rate_limit.generate_per_minute", 10)
	v.SetDefault("rate_limit.burst", 3)
}

// bindWellKnownEnv lets deployments keep the unprefixed variable names
// that hosting platforms and provider dashboards hand out.
func bindWellKnownEnv(v *viper.Viper) {
	_ = v.BindEnv("openai.api_key", "INVOICEAI_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("email.api_key", "INVOICEAI_EMAIL_API_KEY", "RESEND_API_KEY")
	_ = v.BindEnv("postgres.url", "INVOICEAI_POSTGRES_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.secret", "INVOICEAI_AUTH_SECRET", "SESSION_SECRET")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Auth.Provider == types.AuthProviderSupabase && c.Auth.Supabase.BaseURL == "" {
		return errors.New("auth.supabase.base_url is required when auth.provider is supabase")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth: AuthConfig{
			Provider: types.AuthProviderEmail,
			Secret:   "local-development-secret",
			TokenTTL: 24 * time.Hour,
		},
		OpenAI: OpenAIConfig{
			Model:               "gpt-4o-mini",
			MaxCompletionTokens: 2048,
			Timeout:             60 * time.Second,
		},
		Email: EmailConfig{
			FromAddress: "InvoiceAI <noreply@invoiceai.com>",
			Timeout:     15 * time.Second,
		},
		Cache:     CacheConfig{Enabled: true},
		RateLimit: RateLimitConfig{GeneratePerMinute: 10, Burst: 3},
	}
}

// IsAdminEmail reports whether email is listed in auth.admin_emails
func (c AuthConfig) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}

func (c PostgresConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// GetMigrateURL returns the URL form golang-migrate expects
func (c PostgresConfig) GetMigrateURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}
