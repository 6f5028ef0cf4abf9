package engine

import (
	"fmt"
	"time"
)

// Config хранит параметры, которые движок получает при старте
type Config struct {
	// Seed - мастер-зерно. От него зависят раскладка зверей и их поведение.
	Seed int64

	Width  int
	Height int

	// TickRate - тиков в секунду
	TickRate      int
	RoundDuration time.Duration

	CreatureCount int
	PhotoRange    int

	MinLevel int
	MaxLevel int

	// ScoreTimeout - сколько ждать хранилище счета после раунда
	ScoreTimeout time.Duration
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:          time.Now().UnixNano(),
		Width:         40,
		Height:        30,
		TickRate:      10,
		RoundDuration: 60 * time.Second,
		CreatureCount: 10,
		PhotoRange:    10,
		MinLevel:      1,
		MaxLevel:      20,
		ScoreTimeout:  5 * time.Second,
	}
}

// Validate проверяет, что с конфигом можно запустить игру
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("grid %dx%d must be positive", c.Width, c.Height)
	case c.TickRate <= 0:
		return fmt.Errorf("tick rate %d must be positive", c.TickRate)
	case c.RoundDuration <= 0:
		return fmt.Errorf("round duration %v must be positive", c.RoundDuration)
	case c.CreatureCount < 0:
		return fmt.Errorf("creature count %d must not be negative", c.CreatureCount)
	case c.PhotoRange <= 0:
		return fmt.Errorf("photo range %d must be positive", c.PhotoRange)
	case c.MinLevel > c.MaxLevel:
		return fmt.Errorf("level range %d..%d is empty", c.MinLevel, c.MaxLevel)
	}
	return nil
}

// TickInterval - длительность одного тика
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// MaxAlert - потолок тревоги зверя
func (c Config) MaxAlert() int {
	return 10 * c.TickRate
}
