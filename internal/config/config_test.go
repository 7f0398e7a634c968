package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "DATA_DIR", "UI_PASSWORD", "PASSWORD_MODE", "GESTURE_TUNING_PATH",
		"SENSITIVITY", "WHEEL_SCALE", "ZOOM_SCALE", "HOST_URL", "HOST_TOKEN", "HOST_QUEUE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("DATA_DIR", t.TempDir())
}

// TestLoad_Defaults verifies defaults when only the password is set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
	assert.True(t, cfg.PasswordMode)
	assert.Equal(t, 1.5, cfg.Sensitivity)
	assert.Equal(t, 1.0, cfg.WheelScale)
	assert.Equal(t, 256, cfg.HostQueue)
	assert.Equal(t, filepath.Join(cfg.DataDir, "gesture.yaml"), cfg.TuningPath)
}

// TestLoad_PasswordRequired verifies the password rule honors PASSWORD_MODE.
func TestLoad_PasswordRequired(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PASSWORD_MODE", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PasswordMode)
}

// TestLoad_EnvFile verifies .env values apply without overriding the environment.
func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	dir := os.Getenv("DATA_DIR")
	body := "# comment\nUI_PASSWORD=fromfile\nexport SENSITIVITY=2.5\nLISTEN_ADDR=\"127.0.0.1:9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600))
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.UIPassword)
	assert.Equal(t, 2.5, cfg.Sensitivity)
	assert.Equal(t, "127.0.0.1:9999", cfg.ListenAddr)
}

// TestLoad_RejectsBadValues verifies numeric and URL validation.
func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SENSITIVITY": "0",
		"WHEEL_SCALE": "abc",
		"ZOOM_SCALE":  "-1",
		"HOST_QUEUE":  "0",
		"HOST_URL":    "http://example.com",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("UI_PASSWORD", "pw")
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// TestParseEnvLine verifies comments, exports, and quoting.
func TestParseEnvLine(t *testing.T) {
	_, _, ok := parseEnvLine("# nope")
	assert.False(t, ok)
	_, _, ok = parseEnvLine("novalue")
	assert.False(t, ok)

	key, value, ok := parseEnvLine("export KEY='v a l'")
	require.True(t, ok)
	assert.Equal(t, "KEY", key)
	assert.Equal(t, "v a l", value)
}
