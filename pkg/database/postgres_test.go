package database

import (
	"testing"

	"streamvault/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestConnString(t *testing.T) {
	cfg := utils.DatabaseConfig{
		Host:     "db",
		Port:     "5433",
		Name:     "vault",
		User:     "app",
		Password: "secret",
	}

	assert.Equal(t, "user=app password=secret dbname=vault host=db port=5433 sslmode=disable", ConnString(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, ConnString(cfg), "sslmode=require")
}

func TestInitRedis_EmptyAddrDisabled(t *testing.T) {
	rdb, err := InitRedis(utils.RedisConfig{})
	assert.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS titles")
	assert.Contains(t, schema, "UNIQUE NULLS NOT DISTINCT (session_id, title_id, episode_id)")
}
