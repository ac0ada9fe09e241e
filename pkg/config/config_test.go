package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-notas/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:4444", cfg.HTTP.Addr())
	assert.Equal(t, config.StorageJSON, cfg.Storage.Driver)
	assert.Equal(t, "public/PDF", cfg.Files.Dir)
	assert.Equal(t, "/PDF", cfg.Files.PublicPrefix)
	assert.Equal(t, "delp", cfg.Auth.SeedAdminLogin)
	assert.False(t, cfg.Auth.HashPasswords)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("AUTH_HASH_PASSWORDS", "true")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Auth.HashPasswords)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("FILES_DRIVER", "s3")
	_, err := config.Load()
	assert.Error(t, err, "s3 sin bucket")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "x", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/x?sslmode=disable", c.ConnectionString())
	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
