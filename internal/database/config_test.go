package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("AUTH_REQUIRED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, 5*time.Minute, cfg.ProductCacheTTL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("AUTH_REQUIRED", "false")
	t.Setenv("SESSION_STORE", SessionStoreMemory)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 10, cfg.MaxConns)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}
