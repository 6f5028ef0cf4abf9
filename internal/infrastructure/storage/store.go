// Package storage хранит историю счета: лучшие результаты по каждому уровню.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"photohunt-server/internal/domain"
)

// TopLimit - сколько лучших результатов хранится на уровень
const TopLimit = 10

// ErrInvalidLevel - номер уровня должен быть положительным
var ErrInvalidLevel = errors.New("level must be positive")

// ScoreStore - история счета. Реализации должны быть безопасны для конкурентного доступа.
type ScoreStore interface {
	Record(ctx context.Context, entry domain.ScoreEntry) error
	Top(ctx context.Context, level, limit int) ([]domain.ScoreEntry, error)
	Close() error
}

// Open выбирает хранилище по имени бэкенда: memory, redis или sqlite.
// dsn - адрес Redis или путь к файлу базы.
func Open(backend, dsn string) (ScoreStore, error) {
	switch backend {
	case "", "memory":
		return NewMemoryStore(TopLimit), nil
	case "redis":
		return DialRedis(dsn)
	case "sqlite":
		return NewSQLiteStore(dsn)
	default:
		return nil, fmt.Errorf("unknown score backend %q", backend)
	}
}

func checkEntry(entry domain.ScoreEntry) error {
	if entry.Level <= 0 {
		return fmt.Errorf("record score for level %d: %w", entry.Level, ErrInvalidLevel)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > TopLimit {
		return TopLimit
	}
	return limit
}

// rank сортирует записи: больше очков выше, при равенстве раньше записанный выше
func rank(entries []domain.ScoreEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Better(entries[j])
	})
}
