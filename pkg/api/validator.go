package api

import (
	"errors"
	"fmt"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

var validDirections = map[string]bool{"UP": true, "DOWN": true, "LEFT": true, "RIGHT": true}

// Validate проверяет, что у команды есть все нужные поля
func (c ClientCommand) Validate() error {
	switch strings.ToLower(c.Action) {
	case ActionMove:
		if !validDirections[strings.ToUpper(c.Direction)] {
			return fmt.Errorf("unknown direction %q", c.Direction)
		}
	case ActionTakePicture:
	case ActionSelectLevel:
		if c.Level <= 0 {
			return errors.New("level must be positive")
		}
	case "":
		return errors.New("action is required")
	default:
		return fmt.Errorf("unknown action %q", c.Action)
	}
	return nil
}
