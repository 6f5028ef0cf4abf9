package domain

import "strings"

// CreatureID - номер зверя в пределах раунда
type CreatureID int

// Tier - тип зверя. Тиры отличаются только параметрами восприятия.
type Tier uint8

const (
	TierCautious Tier = iota
	TierMedium
	TierBold
)

// TierParams - параметры поведения тира
type TierParams struct {
	SmellDistance  int
	VisualDistance int
	AlertThreshold int
}

var tierTable = map[Tier]TierParams{
	TierCautious: {SmellDistance: 5, VisualDistance: 7, AlertThreshold: 40},
	TierMedium:   {SmellDistance: 6, VisualDistance: 8, AlertThreshold: 40},
	TierBold:     {SmellDistance: 6, VisualDistance: 8, AlertThreshold: 30},
}

var tierToString = map[Tier]string{
	TierCautious: "CAUTIOUS",
	TierMedium:   "MEDIUM",
	TierBold:     "BOLD",
}

// Params возвращает параметры тира
func (t Tier) Params() TierParams {
	return tierTable[t]
}

func (t Tier) String() string {
	if val, ok := tierToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseTier - обратное к String, без учета регистра
func ParseTier(s string) (Tier, bool) {
	upper := strings.ToUpper(s)
	for t, name := range tierToString {
		if name == upper {
			return t, true
		}
	}
	return TierCautious, false
}

// Creature - автономный зверь с уровнем тревоги
type Creature struct {
	ID    CreatureID `json:"id"`
	Tier  Tier       `json:"tier"`
	Alert int        `json:"alert"`
	Entity
}

// NewCreature создает спокойного зверя в позиции pos
func NewCreature(id CreatureID, tier Tier, pos Position) *Creature {
	return &Creature{ID: id, Tier: tier, Entity: NewEntity(pos)}
}

// IsFleeing - тревога достигла порога тира
func (c *Creature) IsFleeing() bool {
	return c.Alert >= c.Tier.Params().AlertThreshold
}
