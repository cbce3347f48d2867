package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Narrator: NarratorConfig{
			Enabled:   true,
			Timeout:   30 * time.Second,
			Fallbacks: true,
		},
		Game: GameConfig{
			DefaultPlayerName: "Space Marine",
			DefaultEnemyCount: 3,
			MaxEnemyCount:     10,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestServerAddr(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		cfg := validConfig()
		cfg.Server.Port = port
		assert.Error(t, cfg.Validate(), "port %d must be rejected", port)
	}
}

func TestValidate_InvalidLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidate_NarratorTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Narrator.Timeout = 0
	assert.Error(t, cfg.Validate(), "enabled narrator needs a positive timeout")

	cfg.Narrator.Enabled = false
	assert.NoError(t, cfg.Validate(), "disabled narrator may leave timeout unset")
}

func TestValidate_Game(t *testing.T) {
	cfg := validConfig()
	cfg.Game.DefaultEnemyCount = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Game.MaxEnemyCount = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Game.DefaultEnemyCount = 20
	assert.Error(t, cfg.Validate(), "default must not exceed max")
}

// TestValidate_PortRange_Property checks the port validation boundary for
// arbitrary values.
func TestValidate_PortRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		port := rapid.IntRange(-100, 70000).Draw(rt, "port")
		cfg := validConfig()
		cfg.Server.Port = port

		err := cfg.Validate()
		if port >= 1 && port <= 65535 {
			assert.NoError(rt, err, "port %d should be valid", port)
		} else {
			assert.Error(rt, err, "port %d should be invalid", port)
		}
	})
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	content := []byte(`
server:
  host: 127.0.0.1
  port: 9000
logging:
  level: debug
  format: console
narrator:
  enabled: false
game:
  default_enemy_count: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Narrator.Enabled)
	assert.Equal(t, 5, cfg.Game.DefaultEnemyCount)
	// Defaults fill everything the file omits.
	assert.Equal(t, "Space Marine", cfg.Game.DefaultPlayerName)
	assert.Equal(t, 10, cfg.Game.MaxEnemyCount)
	assert.Equal(t, 30*time.Second, cfg.Narrator.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	content := []byte(`
logging:
  level: loud
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	_, err := Load(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}
