package domain

import "fmt"

// Position - клетка сетки. Сравнение структурное.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shift возвращает новую позицию со смещением (текущая не меняется)
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step возвращает позицию на n клеток в направлении d
func (p Position) Step(d Direction, n int) Position {
	dx, dy := d.Vector()
	return p.Shift(dx*n, dy*n)
}

// ManhattanTo возвращает манхэттенское расстояние до другой точки
func (p Position) ManhattanTo(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
