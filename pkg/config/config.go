package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every configurator environment variable.
const EnvPrefix = "FILMCONF"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Session backends supported by the session store factory.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	App       AppConfig
	Pricing   PricingConfig
	Session   SessionConfig
	Payment   PaymentConfig
	Leads     LeadsConfig
	Assistant AssistantConfig
	Redis     RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Session.validateBackend(); err != nil {
		return nil, err
	}
	if cfg.Session.Normalized() == SessionBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("redis session backend requires FILMCONF_REDIS_URL or FILMCONF_REDIS_ADDR")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FILMCONF_APP_ENV" default:"dev"`
	Port         string `envconfig:"FILMCONF_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FILMCONF_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"FILMCONF_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"FILMCONF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// PricingConfig carries the fixed-formula rates for the window film line.
// Rates stay env-tunable for sandbox experiments but default to the published
// price card.
type PricingConfig struct {
	FilmPerM2     float64 `envconfig:"FILMCONF_PRICE_FILM_PER_M2" default:"55"`
	InstallPerM2  float64 `envconfig:"FILMCONF_PRICE_INSTALL_PER_M2" default:"30"`
	MinInstallFee float64 `envconfig:"FILMCONF_MIN_INSTALL_FEE" default:"150"`
	ShippingFee   float64 `envconfig:"FILMCONF_SHIPPING_FEE" default:"20"`
}

type SessionConfig struct {
	Backend string        `envconfig:"FILMCONF_SESSION_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"FILMCONF_SESSION_TTL" default:"24h"`
}

func (s SessionConfig) validateBackend() error {
	switch s.Normalized() {
	case SessionBackendMemory, SessionBackendRedis:
		return nil
	}
	return fmt.Errorf("session backend must be %q or %q", SessionBackendMemory, SessionBackendRedis)
}

// Normalized returns the lowercased session backend name.
func (s SessionConfig) Normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

// PaymentConfig drives the simulated gateway. SimulatedDelay mirrors the
// storefront's fixed processing pause; Timeout bounds the whole call and is
// treated as a payment failure when exceeded.
type PaymentConfig struct {
	SimulatedDelay time.Duration `envconfig:"FILMCONF_PAYMENT_SIMULATED_DELAY" default:"2500ms"`
	Timeout        time.Duration `envconfig:"FILMCONF_PAYMENT_TIMEOUT" default:"10s"`
	SimulateFail   bool          `envconfig:"FILMCONF_PAYMENT_SIMULATE_FAILURE" default:"false"`
}

type LeadsConfig struct {
	WebhookURL string        `envconfig:"FILMCONF_LEADS_WEBHOOK_URL"`
	Timeout    time.Duration `envconfig:"FILMCONF_LEADS_TIMEOUT" default:"5s"`
}

// Enabled reports whether a webhook receiver is configured. When false the
// notifier only logs, matching the stubbed CRM sync.
func (l LeadsConfig) Enabled() bool {
	return strings.TrimSpace(l.WebhookURL) != ""
}

type AssistantConfig struct {
	APIKey            string        `envconfig:"FILMCONF_ASSISTANT_API_KEY"`
	BaseURL           string        `envconfig:"FILMCONF_ASSISTANT_BASE_URL" default:"https://api.openai.com/v1"`
	Model             string        `envconfig:"FILMCONF_ASSISTANT_MODEL" default:"gpt-4o-mini"`
	Timeout           time.Duration `envconfig:"FILMCONF_ASSISTANT_TIMEOUT" default:"15s"`
	SystemInstruction string        `envconfig:"FILMCONF_ASSISTANT_SYSTEM_INSTRUCTION" default:"Tu es un expert en films de vitrage pour une agence de communication. Sois pro, court et technique."`
}

// Enabled reports whether the generation service is reachable; without an API
// key every assistant turn resolves to the fallback message.
func (a AssistantConfig) Enabled() bool {
	return strings.TrimSpace(a.APIKey) != ""
}

type RedisConfig struct {
	URL          string        `envconfig:"FILMCONF_REDIS_URL"`
	Address      string        `envconfig:"FILMCONF_REDIS_ADDR"`
	Password     string        `envconfig:"FILMCONF_REDIS_PASSWORD"`
	DB           int           `envconfig:"FILMCONF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FILMCONF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FILMCONF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FILMCONF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FILMCONF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FILMCONF_REDIS_WRITE_TIMEOUT" default:"5s"`
}
