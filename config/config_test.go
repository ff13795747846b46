package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration("")
	require.NoError(t, err)

	assert.Equal(t, 8080, conf.Server.Port)
	assert.Equal(t, "moneee.db", conf.Database.Path)
	assert.Equal(t, "info", conf.Logging.Level)
	assert.Equal(t, "json", conf.Logging.Format)
	assert.NotEmpty(t, conf.Server.AllowedOrigins)
}

func TestLoadConfigurationFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
server:
  port: 9090
database:
  path: ./data/test.db
logging:
  level: debug
  format: console
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, conf.Server.Port)
	assert.Equal(t, "./data/test.db", conf.Database.Path)
	assert.Equal(t, "debug", conf.Logging.Level)
	assert.Equal(t, "console", conf.Logging.Format)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yml")
	assert.Error(t, err)
}
