package domain

// Tile - тип клетки карты
type Tile uint8

const (
	TileEmpty Tile = iota
	TileTree
	TileRock
	TileBush
)

var tileRuneToTile = map[rune]Tile{
	'.': TileEmpty,
	'T': TileTree,
	'R': TileRock,
	'B': TileBush,
}

var tileToString = map[Tile]string{
	TileEmpty: "EMPTY",
	TileTree:  "TREE",
	TileRock:  "ROCK",
	TileBush:  "BUSH",
}

// ParseTile конвертирует символ раскладки уровня в Tile
func ParseTile(r rune) (Tile, bool) {
	t, ok := tileRuneToTile[r]
	return t, ok
}

func (t Tile) String() string {
	if val, ok := tileToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

// Symbol - символ для текстовой раскладки (обратен ParseTile)
func (t Tile) Symbol() byte {
	switch t {
	case TileTree:
		return 'T'
	case TileRock:
		return 'R'
	case TileBush:
		return 'B'
	}
	return '.'
}

// Passable - можно ли встать на клетку. Деревья и камни непроходимы.
func (t Tile) Passable() bool {
	return t != TileTree && t != TileRock
}

// Opaque - останавливает ли клетка луч (фото или взгляд)
func (t Tile) Opaque() bool {
	return t == TileTree || t == TileRock || t == TileBush
}
