package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("POSTS_PER_PAGE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.PostsPerPage)
	assert.Equal(t, "lru", cfg.CacheBackend)
	assert.Equal(t, "/media/", cfg.MediaURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("FEED_CACHE_BACKEND", "none")
	t.Setenv("DB_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 25, cfg.PostsPerPage)
	assert.Equal(t, "none", cfg.CacheBackend)
	assert.Equal(t, "sqlite", cfg.DBDriver)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("SITE_NAME: Cats Daily\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Cats Daily", cfg.SiteName)
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("SITE_NAME: [unclosed\n"), 0o644))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "missing port", mutate: func(c *Config) { c.Port = "" }, wantErr: true},
		{name: "zero page size", mutate: func(c *Config) { c.PostsPerPage = 0 }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: true},
		{name: "unknown cache", mutate: func(c *Config) { c.CacheBackend = "memcached" }, wantErr: true},
		{name: "redis without url", mutate: func(c *Config) { c.CacheBackend = "redis"; c.RedisURL = "" }, wantErr: true},
		{name: "bad media url", mutate: func(c *Config) { c.MediaURL = "media" }, wantErr: true},
		{name: "production default secrets", mutate: func(c *Config) { c.Env = "production" }, wantErr: true},
		{
			name: "production strong secrets",
			mutate: func(c *Config) {
				c.Env = "production"
				c.SessionSecret = "a-session-secret"
				c.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
