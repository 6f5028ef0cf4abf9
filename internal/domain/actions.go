package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionTakePicture
	ActionSelectLevel
)

// Маппинг для конвертации сообщения -> Domain
var actionStringToCmd = map[string]ActionType{
	"move":         ActionMove,
	"take_picture": ActionTakePicture,
	"select_level": ActionSelectLevel,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionMove:        "move",
	ActionTakePicture: "take_picture",
	ActionSelectLevel: "select_level",
}

// ParseAction конвертирует строку из сообщения в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	lower := strings.ToLower(s)
	if val, ok := actionStringToCmd[lower]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "unknown"
}

// IsIntent - действие попадает в очередь событий тика
func (a ActionType) IsIntent() bool {
	return a == ActionMove || a == ActionTakePicture
}
