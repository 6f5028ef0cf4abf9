package systems

import "photohunt-server/internal/domain"

// WorldView - то, что системам нужно знать о мире.
// World Context движка реализует этот интерфейс.
type WorldView interface {
	Map() *domain.GameMap
	Sessions() []*domain.Session
	SessionAt(pos domain.Position) *domain.Session
	CreatureAt(pos domain.Position) *domain.Creature
	IsOccupied(pos domain.Position) bool
}

// CanEnter - клетка в границах, проходима и никем не занята
func CanEnter(w WorldView, pos domain.Position) bool {
	return w.Map().IsPassable(pos) && !w.IsOccupied(pos)
}
