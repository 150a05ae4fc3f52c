package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "streamvault", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, 24, cfg.Catalog.BrowsePageSize)
	assert.Equal(t, 20, cfg.Catalog.SearchPageSize)
	assert.Equal(t, 12, cfg.Catalog.HomeSectionSize)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	content := "APP_NAME=vault-test\nPORT=9090\nDB_NAME=catalog\nBROWSE_PAGE_SIZE=30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_USER", "svc")
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "vault-test", cfg.App.Name)
	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, "catalog", cfg.Database.Name)
	assert.Equal(t, "svc", cfg.Database.User)
	assert.Equal(t, 30, cfg.Catalog.BrowsePageSize)
}
