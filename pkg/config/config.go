package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Portal    PortalConfig
	RateLimit RateLimitConfig
	Assistant AssistantConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PortalConfig tunes the student portal read path.
type PortalConfig struct {
	Timezone        string
	CacheEnabled    bool
	CatalogCacheTTL time.Duration
	// DetailedTimetableGrades have per-period timetables; other grades get a
	// flat subject list.
	DetailedTimetableGrades []int
}

// RateLimitConfig configures the shared fixed-window limiter.
type RateLimitConfig struct {
	Window       time.Duration
	Max          int
	AssistantMax int
}

// AssistantConfig configures the conversational study assistant proxy.
type AssistantConfig struct {
	APIKey       string
	Model        string
	Timeout      time.Duration
	SystemPrompt string
}

// Enabled reports whether an upstream model is configured.
func (c AssistantConfig) Enabled() bool {
	return c.APIKey != ""
}

const defaultSystemPrompt = "You are a friendly and helpful AI Study Buddy named IVA (Intelligent Virtual Assistant). " +
	"You help students with their homework, study schedules, and explain complex academic concepts simply. " +
	"Keep responses encouraging and concise. Format responses in a way that's easy to read on a mobile device."

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
		Issuer: v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Portal = PortalConfig{
		Timezone:        v.GetString("PORTAL_TIMEZONE"),
		CacheEnabled:    v.GetBool("PORTAL_CACHE_ENABLED"),
		CatalogCacheTTL: parseDuration(v.GetString("PORTAL_CATALOG_CACHE_TTL"), 10*time.Minute),

		DetailedTimetableGrades: parseIntList(v.GetString("PORTAL_DETAILED_TIMETABLE_GRADES")),
	}

	cfg.RateLimit = RateLimitConfig{
		Window:       parseDuration(v.GetString("RATE_LIMIT_WINDOW"), time.Minute),
		Max:          v.GetInt("RATE_LIMIT_MAX"),
		AssistantMax: v.GetInt("ASSISTANT_RATE_LIMIT_MAX"),
	}

	cfg.Assistant = AssistantConfig{
		APIKey:       v.GetString("ASSISTANT_API_KEY"),
		Model:        v.GetString("ASSISTANT_MODEL"),
		Timeout:      parseDuration(v.GetString("ASSISTANT_TIMEOUT"), 30*time.Second),
		SystemPrompt: v.GetString("ASSISTANT_SYSTEM_PROMPT"),
	}

	return cfg, nil
}

// Validate rejects configurations the service cannot run with. A missing
// store is a startup failure, never a silent runtime fallback.
func (c *Config) Validate() error {
	var problems []string
	if c.Database.Host == "" {
		problems = append(problems, "DB_HOST is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "DB_NAME is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "DB_USER is required")
	}
	if c.JWT.Secret == "" || (c.Env == EnvProduction && c.JWT.Secret == devJWTSecret) {
		problems = append(problems, "JWT_SECRET must be set")
	}
	if _, err := time.LoadLocation(c.Portal.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("PORTAL_TIMEZONE %q is invalid", c.Portal.Timezone))
	}
	if c.RateLimit.Max <= 0 || c.RateLimit.AssistantMax <= 0 {
		problems = append(problems, "rate limits must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the portal timezone, falling back to UTC.
func (c PortalConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL renders the database as a postgres:// URL for the migration tool.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

const devJWTSecret = "dev_secret"

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "iva_portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_ISSUER", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PORTAL_TIMEZONE", "Africa/Johannesburg")
	v.SetDefault("PORTAL_CACHE_ENABLED", true)
	v.SetDefault("PORTAL_CATALOG_CACHE_TTL", "10m")
	v.SetDefault("PORTAL_DETAILED_TIMETABLE_GRADES", "10,11,12")

	v.SetDefault("RATE_LIMIT_WINDOW", "1m")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("ASSISTANT_RATE_LIMIT_MAX", 20)

	v.SetDefault("ASSISTANT_API_KEY", "")
	v.SetDefault("ASSISTANT_MODEL", "gemini-2.0-flash")
	v.SetDefault("ASSISTANT_TIMEOUT", "30s")
	v.SetDefault("ASSISTANT_SYSTEM_PROMPT", defaultSystemPrompt)
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// parseIntList reads a comma separated list, skipping entries that are not
// integers.
func parseIntList(raw string) []int {
	var out []int
	for _, part := range splitAndTrim(raw) {
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
