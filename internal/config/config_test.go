package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:           EnvDevelopment,
		ServerPort:    "8080",
		JWTSecret:     "secret",
		JWTTTL:        time.Hour,
		PageSize:      20,
		ImageMaxBytes: 1024,
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_UnknownEnv(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "staging"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
}

func TestConfig_Validate_DefaultSecretInProduction(t *testing.T) {
	cfg := validConfig()
	cfg.Env = EnvProduction
	cfg.JWTSecret = "changeme"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.PageSize = 0
	cfg.ServerPort = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGE_SIZE")
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PAGE_SIZE", "50")
	t.Setenv("EMAIL_CHECK_DOMAIN", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 50, cfg.PageSize)
	assert.True(t, cfg.EmailCheckDomain)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FallsBackOnMalformedValues(t *testing.T) {
	t.Setenv("PAGE_SIZE", "lots")
	t.Setenv("JWT_TTL", "forever")

	cfg := Load()

	assert.Equal(t, 20, cfg.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}
