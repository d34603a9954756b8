package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Database.Path = "data/test.db"
	cfg.Auth.JWTSecret = strings.Repeat("s", 32)
	cfg.Auth.Issuer = "tasktrack"
	cfg.Auth.Audience = "tasktrack-api"
	cfg.Auth.TokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 12
	return cfg
}

func TestValidate_AcceptsGoodConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsWeakSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "too-short"
	require.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = ""
	require.Error(t, cfg.Validate())

	// padding with whitespace does not help
	cfg.Auth.JWTSecret = "short" + strings.Repeat(" ", 40)
	require.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadTTLAndCost(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.TokenTTLMinutes = 0
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.BcryptCost = 2
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.BcryptCost = 40
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Auth.ClockSkewSeconds = -1
	require.Error(t, cfg.Validate())
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("TASKTRACK_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("TASKTRACK_AUTH_JWTSECRET", strings.Repeat("k", 32))
	t.Setenv("TASKTRACK_AUTH_TOKENTTLMINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	require.Equal(t, strings.Repeat("k", 32), cfg.Auth.JWTSecret)
	require.Equal(t, 15, cfg.Auth.TokenTTLMinutes)
	require.Equal(t, "tasktrack", cfg.Auth.Issuer)
	require.NoError(t, cfg.Validate())
}
