package systems

import (
	"math/rand"

	"photohunt-server/internal/domain"
)

// Прирост и спад тревоги за тик
const (
	alertSeen    = 4
	alertSmelled = 2
	alertDecay   = -1

	// wanderChance - вероятность шага спокойного зверя за тик
	wanderChance = 0.25
)

// AIResult - что зверь сделал за тик
type AIResult struct {
	Moved   bool
	Fleeing bool
	Alert   int
}

// UpdateAlert пересчитывает тревогу зверя и ограничивает ее [0, maxAlert].
// Возвращает ближайшего охотника (или nil, если охотников нет).
func UpdateAlert(c *domain.Creature, w WorldView, maxAlert int) *domain.Session {
	params := c.Tier.Params()
	nearest := NearestSession(w.Sessions(), c.Pos)

	switch {
	case SessionInSight(w, c.Pos, c.Facing, params.VisualDistance) != nil:
		c.Alert += alertSeen
	case nearest != nil && c.Pos.ManhattanTo(nearest.Pos) < params.SmellDistance:
		c.Alert += alertSmelled
	default:
		c.Alert += alertDecay
	}

	c.Alert = clamp(c.Alert, 0, maxAlert)
	return nearest
}

// StepCreature выполняет один тик поведения зверя: тревога, затем блуждание или бегство.
// Без охотников в мире зверь не убегает, даже если тревога выше порога.
func StepCreature(c *domain.Creature, w WorldView, rng *rand.Rand, maxAlert int) AIResult {
	nearest := UpdateAlert(c, w, maxAlert)
	res := AIResult{Alert: c.Alert}

	if !c.IsFleeing() || nearest == nil {
		res.Moved = wander(c, w, rng)
		return res
	}

	res.Fleeing = true
	res.Moved = flee(c, w, nearest.Pos, rng)
	return res
}

// NearestSession - ближайший по манхэттену охотник; при равенстве - первый в списке
func NearestSession(sessions []*domain.Session, from domain.Position) *domain.Session {
	var nearest *domain.Session
	best := 0
	for _, s := range sessions {
		d := from.ManhattanTo(s.Pos)
		if nearest == nil || d < best {
			nearest, best = s, d
		}
	}
	return nearest
}

func wander(c *domain.Creature, w WorldView, rng *rand.Rand) bool {
	if rng.Float64() >= wanderChance {
		return false
	}

	candidates := make([][2]int, 0, len(domain.Directions))
	for _, d := range domain.Directions {
		dx, dy := d.Vector()
		candidates = append(candidates, [2]int{dx, dy})
	}
	rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })

	return moveFirstLegal(c, w, candidates)
}

func flee(c *domain.Creature, w WorldView, threat domain.Position, rng *rand.Rand) bool {
	dx := awaySign(threat.X-c.Pos.X, rng)
	dy := awaySign(threat.Y-c.Pos.Y, rng)

	candidates := [][2]int{
		{-dx, 0},   // по горизонтали прочь
		{0, -dy},   // по вертикали прочь
		{-dx, -dy}, // по диагонали прочь
		{0, 0},     // остаться
	}
	return moveFirstLegal(c, w, candidates)
}

// moveFirstLegal делает первый допустимый шаг. Взгляд следует за смещением.
func moveFirstLegal(c *domain.Creature, w WorldView, candidates [][2]int) bool {
	for _, mv := range candidates {
		if mv[0] == 0 && mv[1] == 0 {
			return false
		}
		res := calculateShift(w, c.Pos, mv[0], mv[1])
		if !res.HasMoved {
			continue
		}
		c.Pos = res.Target
		if d, ok := domain.DirectionOf(mv[0], mv[1]); ok {
			c.Facing = d
		}
		return true
	}
	return false
}

// awaySign - знак смещения к угрозе; на одной линии сторона выбирается случайно
func awaySign(v int, rng *rand.Rand) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
