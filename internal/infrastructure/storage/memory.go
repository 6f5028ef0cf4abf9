package storage

import (
	"context"
	"sync"

	"photohunt-server/internal/domain"
)

// MemoryStore держит таблицы в памяти процесса. Теряется при рестарте.
type MemoryStore struct {
	mu     sync.RWMutex
	keep   int
	levels map[int][]domain.ScoreEntry
}

func NewMemoryStore(keep int) *MemoryStore {
	return &MemoryStore{
		keep:   normalizeLimit(keep),
		levels: make(map[int][]domain.ScoreEntry),
	}
}

func (m *MemoryStore) Record(_ context.Context, entry domain.ScoreEntry) error {
	if err := checkEntry(entry); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	table := append(m.levels[entry.Level], entry)
	rank(table)
	if len(table) > m.keep {
		table = table[:m.keep]
	}
	m.levels[entry.Level] = table
	return nil
}

func (m *MemoryStore) Top(_ context.Context, level, limit int) ([]domain.ScoreEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	table := m.levels[level]
	limit = min(normalizeLimit(limit), len(table))
	return append([]domain.ScoreEntry(nil), table[:limit]...), nil
}

func (m *MemoryStore) Close() error { return nil }
