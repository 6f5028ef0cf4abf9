package domain

import "math/rand"

// GameMap - сетка тайлов уровня. После загрузки не меняется.
type GameMap struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Level  int      `json:"level"`
	Tiles  [][]Tile `json:"-"` // [y][x]
}

// NewGameMap создает пустую карту заданного размера
func NewGameMap(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &GameMap{Width: width, Height: height, Tiles: tiles}
}

// InBounds - лежит ли позиция внутри сетки
func (m *GameMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// TileAt возвращает тайл клетки. За границей карты - ok=false.
func (m *GameMap) TileAt(p Position) (Tile, bool) {
	if !m.InBounds(p) {
		return TileEmpty, false
	}
	return m.Tiles[p.Y][p.X], true
}

// IsPassable - клетка в границах и не дерево/камень
func (m *GameMap) IsPassable(p Position) bool {
	t, ok := m.TileAt(p)
	return ok && t.Passable()
}

// EmptyCells возвращает все клетки EMPTY в порядке строк
func (m *GameMap) EmptyCells() []Position {
	var cells []Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x] == TileEmpty {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// RandomEmptyCell выбирает случайную клетку EMPTY, не занятую по taken.
func (m *GameMap) RandomEmptyCell(rng *rand.Rand, taken func(Position) bool) (Position, error) {
	cells := m.EmptyCells()
	rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	for _, c := range cells {
		if taken == nil || !taken(c) {
			return c, nil
		}
	}
	return Position{}, ErrNoFreeCell
}

// Rows возвращает раскладку карты строками ('.', 'T', 'R', 'B')
func (m *GameMap) Rows() []string {
	rows := make([]string, m.Height)
	buf := make([]byte, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			buf[x] = m.Tiles[y][x].Symbol()
		}
		rows[y] = string(buf)
	}
	return rows
}
