package di

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"metadata-backoffice/internal/backoffice/config"
	"metadata-backoffice/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.StorageBackendFile
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Storage.LegacyMocksDir = filepath.Join(cfg.Storage.DataDir, "mocks")
	cfg.Redis.Enabled = false
	return cfg
}

func quietLogger() logger.Logger {
	return logger.NewLoggerWithOutput("error", "text", io.Discard)
}

func TestContainer_FileBackendLifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := newFileConfig(t)
	c := NewContainer(cfg, quietLogger())

	require.NoError(t, c.InitializeStorage(ctx))
	assert.DirExists(t, cfg.Storage.DataDir)
	assert.Nil(t, c.ChangeLog)

	require.NoError(t, c.InitializeBackoffice())
	module := c.GetBackofficeModule()
	require.NotNil(t, module)
	assert.False(t, module.ChangeFeedUsecase.Enabled())

	require.NoError(t, c.HealthCheck(ctx))

	require.NoError(t, c.Close())
	assert.Nil(t, c.GetBackofficeModule())
}

func TestContainer_BackofficeRequiresStorage(t *testing.T) {
	c := NewContainer(newFileConfig(t), quietLogger())

	err := c.InitializeBackoffice()
	assert.Error(t, err)
}

func TestContainer_HealthCheckFailsWhenDataDirVanishes(t *testing.T) {
	ctx := context.Background()
	cfg := newFileConfig(t)
	c := NewContainer(cfg, quietLogger())
	require.NoError(t, c.InitializeStorage(ctx))

	require.NoError(t, os.RemoveAll(cfg.Storage.DataDir))

	assert.Error(t, c.HealthCheck(ctx))
}

func TestContainer_UnreachableRedisDisablesChangeLog(t *testing.T) {
	ctx := context.Background()
	cfg := newFileConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Host = "127.0.0.1"
	cfg.Redis.Port = "1"
	cfg.Redis.MaxRetries = -1

	c := NewContainer(cfg, quietLogger())
	require.NoError(t, c.InitializeStorage(ctx))

	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.ChangeLog)
	assert.NoError(t, c.HealthCheck(ctx))
}
