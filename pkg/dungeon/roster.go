package dungeon

import "photohunt-server/internal/domain"

// Границы диапазонов сложности
const (
	calmBandMax  = 5  // до этого уровня только осторожные
	mixedBandMax = 13 // до этого уровня ровно один смелый
)

// Roster - раскладка зверей по тирам на раунд
type Roster struct {
	Cautious int `json:"cautious"`
	Medium   int `json:"medium"`
	Bold     int `json:"bold"`
}

// Total - общее количество зверей
func (r Roster) Total() int {
	return r.Cautious + r.Medium + r.Bold
}

// Tiers разворачивает состав в список тиров: сначала осторожные, затем средние, затем смелые
func (r Roster) Tiers() []domain.Tier {
	tiers := make([]domain.Tier, 0, r.Total())
	for i := 0; i < r.Cautious; i++ {
		tiers = append(tiers, domain.TierCautious)
	}
	for i := 0; i < r.Medium; i++ {
		tiers = append(tiers, domain.TierMedium)
	}
	for i := 0; i < r.Bold; i++ {
		tiers = append(tiers, domain.TierBold)
	}
	return tiers
}

// Composition возвращает состав для уровня при общем количестве n.
// Если n мало для диапазона, счетчики урезаются так, чтобы сумма оставалась n.
func Composition(level, n int) Roster {
	if n <= 0 {
		return Roster{}
	}

	switch {
	case level <= calmBandMax:
		return Roster{Cautious: n}

	case level <= mixedBandMax:
		bold := min(1, n)
		medium := clamp(level-calmBandMax, 0, n-bold)
		return Roster{Cautious: n - medium - bold, Medium: medium, Bold: bold}

	default:
		bold := clamp(level-(mixedBandMax-1), 0, n)
		return Roster{Medium: n - bold, Bold: bold}
	}
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
