package engine

import (
	"fmt"

	"photohunt-server/internal/domain"
	"photohunt-server/pkg/dungeon"
)

// roundSetup - все, что нужно для раунда, собранное до замены мира
type roundSetup struct {
	gameMap    *domain.GameMap
	creatures  []*domain.Creature
	sessionPos map[domain.SessionID]domain.Position
}

func (w *World) buildMap(level int) (*domain.GameMap, error) {
	rows, err := w.levels.Layout(level)
	if err != nil {
		return nil, err
	}
	return dungeon.NewLevel(level, rows).WithSize(w.cfg.Width, w.cfg.Height).Build()
}

// buildRound собирает карту, расставляет охотников, затем зверей
func (w *World) buildRound(level int, sessions []domain.SessionID) (roundSetup, error) {
	m, err := w.buildMap(level)
	if err != nil {
		return roundSetup{}, fmt.Errorf("build level %d: %w", level, err)
	}

	taken := make(map[domain.Position]bool)
	isTaken := func(p domain.Position) bool { return taken[p] }

	positions := make(map[domain.SessionID]domain.Position, len(sessions))
	for _, id := range sessions {
		pos, err := m.RandomEmptyCell(w.rng, isTaken)
		if err != nil {
			return roundSetup{}, fmt.Errorf("place session %s on level %d: %w", id, level, err)
		}
		taken[pos] = true
		positions[id] = pos
	}

	roster := dungeon.Composition(level, w.cfg.CreatureCount)
	creatures, err := dungeon.SpawnCreatures(m, roster, w.rng, isTaken)
	if err != nil {
		return roundSetup{}, fmt.Errorf("spawn roster on level %d: %w", level, err)
	}

	return roundSetup{gameMap: m, creatures: creatures, sessionPos: positions}, nil
}
