package actions

import (
	"photohunt-server/internal/domain"
	"photohunt-server/internal/engine/handlers"
	"photohunt-server/internal/systems"
	"photohunt-server/pkg/api"
)

// HandleMove поворачивает охотника и делает шаг, если клетка свободна.
// Подтверждение уходит только при успешном шаге.
func HandleMove(ctx handlers.Context, dir domain.Direction) (handlers.Result, error) {
	res := systems.ApplyMove(&ctx.Actor.Entity, ctx.World, dir)
	if !res.HasMoved {
		return handlers.EmptyResult(), nil
	}

	out := handlers.Reply(api.Moved())
	out.Moved = true
	return out, nil
}
