package handlers

import (
	"photohunt-server/internal/domain"
	"photohunt-server/internal/systems"
	"photohunt-server/pkg/api"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	World      systems.WorldView
	Actor      *domain.Session // Тот, кто выполняет команду
	PhotoRange int
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ отправляет сообщения сам, он возвращает данные.
type Result struct {
	Reply *api.ServerResponse // Подтверждение только для Actor
	Moved bool
	Photo systems.PhotoResult
}

// HandlerFunc - это контракт для любой команды (move, take_picture).
type HandlerFunc func(ctx Context, ev domain.ClientEvent) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Reply - результат с подтверждением для клиента
func Reply(msg api.ServerResponse) Result {
	return Result{Reply: &msg}
}
