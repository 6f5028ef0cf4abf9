package dungeon

import (
	"fmt"

	"photohunt-server/internal/domain"
)

// LevelBuilder предоставляет fluent API для сборки карты из раскладки
type LevelBuilder struct {
	level  int
	width  int
	height int
	rows   []string
}

// NewLevel создает builder для уровня с раскладкой rows
func NewLevel(level int, rows []string) *LevelBuilder {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	return &LevelBuilder{
		level:  level,
		width:  width,
		height: len(rows),
		rows:   rows,
	}
}

// WithSize требует, чтобы раскладка имела ровно такой размер
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.width = width
	b.height = height
	return b
}

// Build проверяет раскладку и собирает карту
func (b *LevelBuilder) Build() (*domain.GameMap, error) {
	if len(b.rows) != b.height {
		return nil, fmt.Errorf("level %d: %d rows, want %d: %w", b.level, len(b.rows), b.height, domain.ErrBadLayout)
	}

	m := domain.NewGameMap(b.width, b.height)
	m.Level = b.level

	for y, row := range b.rows {
		if len(row) != b.width {
			return nil, fmt.Errorf("level %d row %d: %d columns, want %d: %w", b.level, y, len(row), b.width, domain.ErrBadLayout)
		}
		for x, r := range row {
			tile, ok := domain.ParseTile(r)
			if !ok {
				return nil, fmt.Errorf("level %d at (%d,%d): unknown tile %q: %w", b.level, x, y, r, domain.ErrBadLayout)
			}
			m.Tiles[y][x] = tile
		}
	}
	return m, nil
}
