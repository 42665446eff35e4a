// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key when read from the environment,
// e.g. RESUME_API_SERVER_PORT for server.port.
const EnvPrefix = "RESUME_API"

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the full service configuration.
// All fields are optional in the file; missing values use defaults.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	LLM         LLMConfig      `mapstructure:"llm"`
	Upload      UploadConfig   `mapstructure:"upload"`
	Cache       CacheConfig    `mapstructure:"cache"`
	Auth        AuthConfig     `mapstructure:"auth"`
	RateLimit   RateLimit      `mapstructure:"rate_limit"`
	Scoring     ScoringConfig  `mapstructure:"scoring"`
	Log         LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig configures the PostgreSQL score store.
type DatabaseConfig struct {
	URL           string `mapstructure:"url"`
	RunMigrations bool   `mapstructure:"run_migrations"`
}

// LLMConfig configures the model provider used for resume parsing.
type LLMConfig struct {
	Provider string            `mapstructure:"provider"` // gemini or genai
	APIKey   string            `mapstructure:"api_key"`
	Models   map[string]string `mapstructure:"models"` // tier -> model name
	Timeout  time.Duration     `mapstructure:"timeout"`
}

// UploadConfig limits accepted resume files.
type UploadConfig struct {
	MaxSize string `mapstructure:"max_size"` // human readable, e.g. "10MB"
}

// CacheConfig configures the parsed resume cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// AuthConfig configures bearer-token verification. Empty JWTSecret disables it.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Audience  string `mapstructure:"audience"`
}

// RateLimit configures the per-client request limiter.
type RateLimit struct {
	Enabled   bool          `mapstructure:"enabled"`
	Limit     int           `mapstructure:"limit"`
	Window    time.Duration `mapstructure:"window"`
	Burst     int           `mapstructure:"burst"`
	Whitelist []string      `mapstructure:"whitelist"` // client IPs exempt from limiting
}

// ScoringConfig configures score weighting and auto-rejection.
type ScoringConfig struct {
	RequiredSkillsWeight float64 `mapstructure:"required_skills_weight"`
	ExperienceWeight     float64 `mapstructure:"experience_weight"`
	EducationWeight      float64 `mapstructure:"education_weight"`
	NiceToHaveWeight     float64 `mapstructure:"nice_to_have_weight"`
	AutoRejectBelow      float64 `mapstructure:"auto_reject_below"` // 0 disables the threshold
}

// LogConfig configures the zap logger.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load reads configuration from an optional file at path and the environment.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional variable names used by the hosting platform.
	bindings := map[string]string{
		"database.url":            "DATABASE_URL",
		"llm.api_key":             "GEMINI_API_KEY",
		"cache.redis_url":         "REDIS_URL",
		"auth.jwt_secret":         "AUTH_JWT_SECRET",
		"environment":             "APP_ENV",
		"server.port":             "PORT",
		"log.json":                "LOG_JSON",
		"log.debug":               "LOG_DEBUG",
		"llm.provider":            "LLM_PROVIDER",
		"upload.max_size":         "MAX_UPLOAD_SIZE",
		"database.run_migrations": "RUN_MIGRATIONS",
	}
	for key, env := range bindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.run_migrations", false)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.models", map[string]string{
		"lite":     "gemini-2.5-flash-lite",
		"standard": "gemini-2.5-flash",
		"advanced": "gemini-2.5-pro",
	})
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("upload.max_size", "10MB")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.audience", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.limit", 60)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.whitelist", []string{})

	v.SetDefault("scoring.required_skills_weight", 0.5)
	v.SetDefault("scoring.experience_weight", 0.25)
	v.SetDefault("scoring.education_weight", 0.15)
	v.SetDefault("scoring.nice_to_have_weight", 0.10)
	v.SetDefault("scoring.auto_reject_below", 0.0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Validate checks that the configuration has valid values.
// It does not require credentials; commands check those they need.
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config error: 'environment' must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' out of range: %d", c.Server.Port)
	}

	switch c.LLM.Provider {
	case "gemini", "genai":
	default:
		return fmt.Errorf("config error: unknown 'llm.provider' %q", c.LLM.Provider)
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("config error: 'llm.timeout' must be non-negative")
	}

	if _, err := c.MaxUploadBytes(); err != nil {
		return err
	}

	if c.RateLimit.Enabled && (c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("config error: 'rate_limit.limit' and 'rate_limit.window' must be positive when enabled")
	}

	s := c.Scoring
	for name, w := range map[string]float64{
		"required_skills_weight": s.RequiredSkillsWeight,
		"experience_weight":      s.ExperienceWeight,
		"education_weight":       s.EducationWeight,
		"nice_to_have_weight":    s.NiceToHaveWeight,
	} {
		if w < 0 {
			return fmt.Errorf("config error: 'scoring.%s' must be non-negative", name)
		}
	}
	if s.RequiredSkillsWeight+s.ExperienceWeight+s.EducationWeight+s.NiceToHaveWeight <= 0 {
		return fmt.Errorf("config error: scoring weights must sum to a positive value")
	}
	if s.AutoRejectBelow < 0 || s.AutoRejectBelow > 100 {
		return fmt.Errorf("config error: 'scoring.auto_reject_below' must be within 0-100")
	}

	return nil
}

// MaxUploadBytes parses Upload.MaxSize into bytes.
func (c *Config) MaxUploadBytes() (int64, error) {
	size, err := units.FromHumanSize(c.Upload.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'upload.max_size' %q: %w", c.Upload.MaxSize, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("config error: 'upload.max_size' must be positive")
	}
	return size, nil
}

// IsProduction reports whether error details should be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
