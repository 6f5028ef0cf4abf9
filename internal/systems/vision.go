package systems

import "photohunt-server/internal/domain"

// RayStop - как луч ведет себя на непрозрачной клетке
type RayStop uint8

const (
	// StopBefore - непрозрачная клетка не проверяется (взгляд зверя)
	StopBefore RayStop = iota
	// StopAfter - обитатели непрозрачной клетки проверяются, дальше луч не идет (снимок)
	StopAfter
)

// CastRay идет от from в направлении d по клеткам 1..length и вызывает visit для каждой.
// Граница карты останавливает луч без проверки. visit может вернуть true, чтобы закончить раньше.
func CastRay(m *domain.GameMap, from domain.Position, d domain.Direction, length int, stop RayStop, visit func(domain.Position) bool) {
	for i := 1; i <= length; i++ {
		pos := from.Step(d, i)

		tile, ok := m.TileAt(pos)
		if !ok {
			return
		}

		if tile.Opaque() {
			if stop == StopAfter {
				visit(pos)
			}
			return
		}

		if visit(pos) {
			return
		}
	}
}

// SessionInSight возвращает первого охотника на линии взгляда или nil
func SessionInSight(w WorldView, from domain.Position, facing domain.Direction, distance int) *domain.Session {
	var seen *domain.Session
	CastRay(w.Map(), from, facing, distance, StopBefore, func(pos domain.Position) bool {
		seen = w.SessionAt(pos)
		return seen != nil
	})
	return seen
}
