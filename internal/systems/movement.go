package systems

import (
	"photohunt-server/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target   domain.Position
	HasMoved bool
	IsWall   bool // за границей, дерево или камень
	Occupied bool // клетка занята охотником или зверем
}

// CalculateMove вычисляет шаг из from в направлении d. Не меняет состояние мира!
func CalculateMove(w WorldView, from domain.Position, d domain.Direction) MovementResult {
	dx, dy := d.Vector()
	return calculateShift(w, from, dx, dy)
}

func calculateShift(w WorldView, from domain.Position, dx, dy int) MovementResult {
	target := from.Shift(dx, dy)
	res := MovementResult{Target: target}

	// 1. Границы и препятствия
	if !w.Map().IsPassable(target) {
		res.IsWall = true
		return res
	}

	// 2. Занятость
	if w.IsOccupied(target) {
		res.Occupied = true
		return res
	}

	res.HasMoved = true
	return res
}

// ApplyMove поворачивает сущность в направлении d и делает шаг, если клетка свободна.
// Поворот происходит всегда, даже если шаг не удался.
func ApplyMove(e *domain.Entity, w WorldView, d domain.Direction) MovementResult {
	e.Facing = d
	res := CalculateMove(w, e.Pos, d)
	if res.HasMoved {
		e.Pos = res.Target
	}
	return res
}
