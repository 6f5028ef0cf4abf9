package dungeon

import (
	"fmt"
	"math/rand"

	"photohunt-server/internal/domain"
)

// SpawnCreatures расставляет состав по случайным свободным клеткам EMPTY.
// taken сообщает о клетках, уже занятых охотниками; сами звери тоже не пересекаются.
func SpawnCreatures(m *domain.GameMap, roster Roster, rng *rand.Rand, taken func(domain.Position) bool) ([]*domain.Creature, error) {
	free := m.EmptyCells()
	rng.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	creatures := make([]*domain.Creature, 0, roster.Total())
	next := 0
	for i, tier := range roster.Tiers() {
		for next < len(free) && taken != nil && taken(free[next]) {
			next++
		}
		if next >= len(free) {
			return nil, fmt.Errorf("spawn %s creature %d of %d: %w", tier, i+1, roster.Total(), domain.ErrNoFreeCell)
		}
		creatures = append(creatures, domain.NewCreature(domain.CreatureID(i+1), tier, free[next]))
		next++
	}
	return creatures, nil
}
