package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DRILLZ_DB", "/tmp/x.db")
	t.Setenv("DRILLZ_USER", "alice")
	t.Setenv("DRILLZ_DAILY_CAP", "250")
	t.Setenv("DRILLZ_REWARD_TIMEOUT", "750ms")
	t.Setenv("DRILLZ_SESSION_LENGTH", "10")
	t.Setenv("DRILLZ_LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.db", cfg.DB)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, 250, cfg.DailyCap)
	assert.Equal(t, 750*time.Millisecond, cfg.RewardTimeout)
	assert.Equal(t, 10, cfg.SessionLength)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"non-numeric cap", "DRILLZ_DAILY_CAP", "lots"},
		{"zero cap", "DRILLZ_DAILY_CAP", "0"},
		{"negative length", "DRILLZ_SESSION_LENGTH", "-1"},
		{"unknown driver", "DRILLZ_DB_DRIVER", "oracle"},
		{"bad duration", "DRILLZ_REWARD_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestDSN(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	cfg := DefaultConfig()
	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "drillz", "drillz.db"), dsn)

	cfg.DBDriver = "postgres"
	_, err = cfg.DSN()
	assert.Error(t, err)

	cfg.DB = "postgres://localhost/drillz"
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/drillz", dsn)
}
