package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "persons.toml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NonExistentFile(t *testing.T) {
	_, err := Load("/non/existent/persons.toml")
	assert.Error(t, err)
}

func TestLoad_InvalidTOML(t *testing.T) {
	p := writeConfig(t, "[api\nbase_url = 1")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line")
}

func TestLoad_ValidConfig(t *testing.T) {
	p := writeConfig(t, `
[api]
base_url = "http://10.0.0.5:8080/tp333/api"
timeout_seconds = 7

[ui]
theme = "neon"

[log]
file = "/tmp/persons.log"
level = "debug"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://10.0.0.5:8080/tp333/api", cfg.API.BaseURL)
	assert.Equal(t, 7*time.Second, cfg.API.Timeout())
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, "auto", cfg.UI.Color, "unset keys keep defaults")
	assert.Equal(t, "/tmp/persons.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_ReportsEveryField(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "/tp333/api"
	cfg.API.TimeoutSeconds = -1
	cfg.UI.Theme = "pink"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	paths := make([]string, 0, len(verrs))
	for _, v := range verrs {
		paths = append(paths, v.FieldPath)
	}
	assert.ElementsMatch(t, []string{"api.base_url", "api.timeout_seconds", "ui.theme", "log.level"}, paths)
}
