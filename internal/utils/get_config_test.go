package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetConfigEnv removes every configuration key from the process
// environment for the duration of the test.
func unsetConfigEnv(t *testing.T) {
	t.Helper()
	typ := reflect.TypeOf(Config{})
	for i := 0; i < typ.NumField(); i++ {
		key := typ.Field(i).Tag.Get("yaml")
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	unsetConfigEnv(t)
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadConfigEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-from-shell")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-shell", cfg.AnthropicAPIKey)
}

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
	assert.Equal(t, 120*time.Second, cfg.ModelTimeout())
	assert.Equal(t, 1, cfg.RenderPage)
	assert.Equal(t, StoreFirestore, cfg.StoreDriver)
}

func TestLoadConfigYAMLThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"APP_PORT: \"9000\"\nSTORE_DRIVER: memory\nRENDER_PAGE: 0\nMODEL_PROVIDER: gemini\n",
	), 0o644))

	t.Setenv("APP_PORT", "9100")
	t.Setenv("MODEL_MAX_RETRIES", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.AppPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 0, cfg.RenderPage)
	assert.Equal(t, ProviderGemini, cfg.ModelProvider)
	assert.Equal(t, 5, cfg.ModelMaxRetries)
	assert.Equal(t, 300, cfg.RenderDPI)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_MODEL=from-dotenv\n"), 0o644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.GeminiModel)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)

	cases := map[string]string{
		"STORE_DRIVER":        "mongo",
		"MODEL_PROVIDER":      "openai",
		"ARCHIVE_DRIVER":      "ftp",
		"RENDER_DPI":          "0",
		"RENDER_JPEG_QUALITY": "101",
		"MODEL_MAX_RETRIES":   "-1",
		"APP_BODY_LIMIT_MB":   "lots",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: [unterminated\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
