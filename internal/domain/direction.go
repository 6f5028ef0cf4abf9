package domain

import "strings"

// Direction - одно из четырех направлений взгляда/движения
type Direction uint8

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions - все направления в каноническом порядке
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

var directionStringToDir = map[string]Direction{
	"UP":    DirUp,
	"DOWN":  DirDown,
	"LEFT":  DirLeft,
	"RIGHT": DirRight,
}

var directionDirToString = map[Direction]string{
	DirUp:    "UP",
	DirDown:  "DOWN",
	DirLeft:  "LEFT",
	DirRight: "RIGHT",
}

// ParseDirection конвертирует строку из сообщения в Direction
func ParseDirection(s string) (Direction, bool) {
	d, ok := directionStringToDir[strings.ToUpper(s)]
	return d, ok
}

func (d Direction) String() string {
	if val, ok := directionDirToString[d]; ok {
		return val
	}
	return "UNKNOWN"
}

// Valid - true для одного из четырех известных направлений
func (d Direction) Valid() bool {
	return d <= DirRight
}

// Vector возвращает единичное смещение. Y растет вниз.
func (d Direction) Vector() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// DirectionOf возвращает направление для смещения (dx, dy).
// Горизонтальная составляющая важнее; для (0,0) ok=false.
func DirectionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx < 0:
		return DirLeft, true
	case dx > 0:
		return DirRight, true
	case dy < 0:
		return DirUp, true
	case dy > 0:
		return DirDown, true
	}
	return DirUp, false
}
