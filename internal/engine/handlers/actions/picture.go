package actions

import (
	"photohunt-server/internal/engine/handlers"
	"photohunt-server/internal/systems"
	"photohunt-server/pkg/api"
)

// HandleTakePicture делает снимок вдоль взгляда. Подтверждение уходит всегда.
func HandleTakePicture(ctx handlers.Context) (handlers.Result, error) {
	photo := systems.TakePicture(ctx.Actor, ctx.World, ctx.PhotoRange)

	out := handlers.Reply(api.PictureTaken())
	out.Photo = photo
	return out, nil
}
