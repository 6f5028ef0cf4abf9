package domain

// Entity - общее состояние охотника и зверя: позиция и взгляд.
type Entity struct {
	Pos    Position  `json:"pos"`
	Facing Direction `json:"facing"`
}

// NewEntity создает сущность, смотрящую вверх
func NewEntity(pos Position) Entity {
	return Entity{Pos: pos, Facing: DirUp}
}
