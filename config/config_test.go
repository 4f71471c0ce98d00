package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "memory", c.StoreDriver)
	assert.Equal(t, 500, c.LatencyMS)
	assert.False(t, c.NoSeed)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
	assert.Equal(t, c, Get())
}

func TestLoadFromJSONAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"app": {"AppPort": "9000", "AllowedOrigins": ["https://a.example"], "SiteBaseURL": "https://blog.example/"},
		"store": {"Driver": "mysql", "LatencyMS": -1},
		"seed": {"Disabled": true, "File": "seed.toml"},
		"cache": {"Enabled": true, "TTLSeconds": 60},
		"log": {"Level": "debug"}
	}`), 0o644))

	t.Setenv("APP_PORT", "9100")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("REDIS_PORT", "6380")

	c, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", c.AppPort)
	assert.Equal(t, "mysql", c.StoreDriver)
	assert.Equal(t, -1, c.LatencyMS)
	assert.True(t, c.NoSeed)
	assert.Equal(t, "seed.toml", c.SeedFile)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 60, c.CacheTTLSeconds)
	assert.Equal(t, 6380, c.RedisPort)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, c.AllowedOrigins)
	assert.Equal(t, "https://blog.example", c.BaseURL())
}

func TestLatencyZeroMeansDisabledEverywhere(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	c, err := LoadFrom(write("zero.json", `{"store": {"LatencyMS": 0}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.LatencyMS)

	c, err = LoadFrom(write("unset.json", `{"store": {"Driver": "memory"}}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultLatencyMS, c.LatencyMS)

	t.Setenv("LATENCY_MS", "0")
	c, err = LoadFrom(write("set.json", `{"store": {"LatencyMS": 250}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.LatencyMS)
}

func TestLoadFromInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))
	_, err := LoadFrom(path)
	assert.Error(t, err)

	t.Setenv("LATENCY_MS", "soon")
	_, err = LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorContains(t, err, "LATENCY_MS")
}

func TestDSN(t *testing.T) {
	c := AppConfig{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:1)/d?charset=utf8mb4&parseTime=True&loc=UTC", c.DSN())

	c.DatabaseURI = "custom"
	assert.Equal(t, "custom", c.DSN())
}
