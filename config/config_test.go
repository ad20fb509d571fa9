package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.HTTPPort)
	assert.Equal(t, DBTypePostgres, config.DatabaseType)
	assert.Equal(t, "palettes", config.DatabaseName)
	assert.Equal(t, "localhost", config.DatabaseHost)
	assert.Equal(t, 86400, config.JwtAccessDuration)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, config.AllowedOrigins)
	assert.True(t, config.DevMode)
	assert.True(t, config.DailyPalette)
	assert.NotEmpty(t, config.JwtSecret)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("DB_TYPE", "sqlite3")
	t.Setenv("DB_PATH", "/tmp/p.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_DURATION", "60")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DEV_MODE", "false")
	t.Setenv("DAILY_PALETTE", "false")

	config, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", config.HTTPPort)
	assert.Equal(t, DBTypeSQLite, config.DatabaseType)
	assert.Equal(t, "/tmp/p.db", config.DatabasePath)
	assert.Equal(t, "s3cret", config.JwtSecret)
	assert.Equal(t, 60, config.JwtAccessDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.AllowedOrigins)
	assert.False(t, config.DevMode)
	assert.False(t, config.DailyPalette)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_type: memory\nhttp_port: \":7070\"\njwt_secret: from-file\n"), 0o644))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DBTypeMemory, config.DatabaseType)
	assert.Equal(t, ":7070", config.HTTPPort)
	assert.Equal(t, "from-file", config.JwtSecret)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"unknown db type", Config{DatabaseType: "mysql", JwtAccessDuration: 1, DevMode: true}},
		{"non-positive duration", Config{DatabaseType: DBTypeMemory, DevMode: true}},
		{"missing secret in production", Config{DatabaseType: DBTypeMemory, JwtAccessDuration: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.config.Validate(), ErrInvalidConfig)
		})
	}
}
