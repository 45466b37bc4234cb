package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:       EnvDevelopment,
		Database:  DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "iva_portal", SSLMode: "disable"},
		JWT:       JWTConfig{Secret: "secret"},
		Portal:    PortalConfig{Timezone: "Africa/Johannesburg"},
		RateLimit: RateLimitConfig{Window: time.Minute, Max: 60, AssistantMax: 20},
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingStore(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	cfg.Database.Name = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
}

func TestValidateRejectsDevSecretInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Env = EnvProduction
	cfg.JWT.Secret = devJWTSecret

	require.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Portal.Timezone = "Mars/Olympus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORTAL_TIMEZONE")
}

func TestDatabaseURL(t *testing.T) {
	cfg := validConfig().Database
	cfg.Password = "pw"
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/iva_portal?sslmode=disable", cfg.URL())
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=iva_portal sslmode=disable", cfg.DSN())
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , ,b "))
}

func TestParseIntList(t *testing.T) {
	assert.Nil(t, parseIntList(""))
	assert.Equal(t, []int{10, 11, 12}, parseIntList("10, 11,x,12"))
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("bogus", time.Minute))
	assert.Equal(t, 2*time.Second, parseDuration("2s", time.Minute))
}
