package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Toast.Visible)
	assert.Equal(t, 300*time.Millisecond, cfg.Toast.Fade)
	assert.Equal(t, 120, cfg.RateLimiter.RequestsPerTimeFrame)
	assert.Equal(t, time.Minute, cfg.RateLimiter.TimeFrame)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  host: 0.0.0.0
  port: 9000
toast:
  visible: 5s
storage:
  dir: /tmp/lobby
`), 0o644))

	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("TOAST_FADE", "1s")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, uint16(9100), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Toast.Visible)
	assert.Equal(t, time.Second, cfg.Toast.Fade)
	assert.Equal(t, "/tmp/lobby", cfg.Storage.Dir)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDetermineConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	assert.Equal(t, "explicit.yaml", DetermineConfigPath("explicit.yaml"))

	t.Setenv("CHATLOBBY_CONFIG", "from-env.yaml")
	assert.Equal(t, "from-env.yaml", DetermineConfigPath(""))

	t.Setenv("CHATLOBBY_CONFIG", "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}"), 0o644))
	assert.Equal(t, "./config.yaml", DetermineConfigPath(""))
}
