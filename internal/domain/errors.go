package domain

import "errors"

var (
	// ErrUnknownLevel - в таблице нет раскладки для уровня
	ErrUnknownLevel = errors.New("unknown level")
	// ErrBadLayout - раскладка не совпадает с размером сетки или содержит чужие символы
	ErrBadLayout = errors.New("bad level layout")
	// ErrNoFreeCell - не осталось свободной клетки для спавна
	ErrNoFreeCell = errors.New("no free empty cell")
	// ErrLevelOutOfRange - номер уровня вне [min, max]
	ErrLevelOutOfRange = errors.New("level out of range")
)
