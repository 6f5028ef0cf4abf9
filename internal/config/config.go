// Package config собирает настройки сервера из .env, окружения и флагов.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"photohunt-server/internal/engine"
)

// Переменные окружения
const (
	EnvPort          = "PH_PORT"
	EnvSeed          = "PH_SEED"
	EnvTickRate      = "PH_TICK_RATE"
	EnvRoundDuration = "PH_ROUND_DURATION"
	EnvCreatures     = "PH_CREATURES"
	EnvPhotoRange    = "PH_PHOTO_RANGE"
	EnvLevelsFile    = "PH_LEVELS_FILE"
	EnvScoreBackend  = "PH_SCORE_BACKEND"
	EnvScoreDSN      = "PH_SCORE_DSN"
	EnvDebug         = "PH_DEBUG"
)

// Config - все, что нужно процессу сервера
type Config struct {
	Port string

	Engine engine.Config

	// LevelsFile - таблица уровней на диске; пусто - встроенная таблица
	LevelsFile string

	// ScoreBackend: memory, redis или sqlite
	ScoreBackend string
	ScoreDSN     string

	// Debug включает /debug/* эндпоинты
	Debug bool
}

// Default - настройки без .env и окружения
func Default() Config {
	return Config{
		Port:         "8080",
		Engine:       engine.NewConfig(),
		ScoreBackend: "memory",
	}
}

// Load читает необязательный .env, затем окружение процесса.
// Уже выставленные переменные окружения .env не перетирает.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return LoadFrom(os.LookupEnv)
}

// LoadFrom применяет переменные из lookup поверх значений по умолчанию
func LoadFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	r := reader{lookup: lookup}

	r.str(EnvPort, &cfg.Port)
	r.int64(EnvSeed, &cfg.Engine.Seed)
	r.int(EnvTickRate, &cfg.Engine.TickRate)
	r.duration(EnvRoundDuration, &cfg.Engine.RoundDuration)
	r.int(EnvCreatures, &cfg.Engine.CreatureCount)
	r.int(EnvPhotoRange, &cfg.Engine.PhotoRange)
	r.str(EnvLevelsFile, &cfg.LevelsFile)
	r.str(EnvScoreBackend, &cfg.ScoreBackend)
	r.str(EnvScoreDSN, &cfg.ScoreDSN)
	r.bool(EnvDebug, &cfg.Debug)

	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// Validate проверяет настройки процесса и движка
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	switch c.ScoreBackend {
	case "memory", "":
	case "redis", "sqlite":
		if c.ScoreDSN == "" {
			return fmt.Errorf("score backend %s needs %s", c.ScoreBackend, EnvScoreDSN)
		}
	default:
		return fmt.Errorf("unknown score backend %q", c.ScoreBackend)
	}
	return c.Engine.Validate()
}

// reader запоминает первую ошибку разбора
type reader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *reader) get(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.lookup(key)
	return v, ok && v != ""
}

func (r *reader) fail(key, value string, err error) {
	r.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
}

func (r *reader) str(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func (r *reader) int(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (r *reader) int64(key string, dst *int64) {
	if v, ok := r.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (r *reader) duration(key string, dst *time.Duration) {
	if v, ok := r.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (r *reader) bool(key string, dst *bool) {
	if v, ok := r.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = b
	}
}
