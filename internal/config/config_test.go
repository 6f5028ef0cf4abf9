package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 40, cfg.Engine.Width)
	assert.Equal(t, 30, cfg.Engine.Height)
	assert.Equal(t, 10, cfg.Engine.TickRate)
	assert.Equal(t, 60*time.Second, cfg.Engine.RoundDuration)
	assert.Equal(t, 10, cfg.Engine.CreatureCount)
	assert.Equal(t, "memory", cfg.ScoreBackend)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		EnvPort:          "9000",
		EnvSeed:          "42",
		EnvTickRate:      "20",
		EnvRoundDuration: "90s",
		EnvCreatures:     "6",
		EnvPhotoRange:    "8",
		EnvLevelsFile:    "levels.txt",
		EnvScoreBackend:  "sqlite",
		EnvScoreDSN:      "scores.db",
		EnvDebug:         "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, 20, cfg.Engine.TickRate)
	assert.Equal(t, 90*time.Second, cfg.Engine.RoundDuration)
	assert.Equal(t, 6, cfg.Engine.CreatureCount)
	assert.Equal(t, 8, cfg.Engine.PhotoRange)
	assert.Equal(t, "levels.txt", cfg.LevelsFile)
	assert.Equal(t, "sqlite", cfg.ScoreBackend)
	assert.True(t, cfg.Debug)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{name: "tick rate", vars: map[string]string{EnvTickRate: "fast"}},
		{name: "duration", vars: map[string]string{EnvRoundDuration: "60"}},
		{name: "debug", vars: map[string]string{EnvDebug: "maybe"}},
		{name: "seed", vars: map[string]string{EnvSeed: "0x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(env(tt.vars))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.ScoreBackend = "redis"
	assert.Error(t, cfg.Validate(), "redis needs an address")

	cfg.ScoreDSN = "localhost:6379"
	assert.NoError(t, cfg.Validate())

	cfg.ScoreBackend = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Engine.TickRate = 0
	assert.Error(t, cfg.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PH_PORT=7070\nPH_CREATURES=4\n"), 0o644))

	// Окружение процесса важнее .env
	t.Setenv(EnvCreatures, "5")
	t.Setenv(EnvPort, "")
	require.NoError(t, os.Unsetenv(EnvPort))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 5, cfg.Engine.CreatureCount)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err, "missing .env is not an error")
}
