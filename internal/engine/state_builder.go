package engine

import (
	"time"

	"photohunt-server/pkg/api"
)

// BuildSnapshot создает полный снимок мира для рассылки всем клиентам.
func (w *World) BuildSnapshot(now time.Time, roundDuration time.Duration) api.StateUpdate {
	sessions := w.Sessions()
	update := api.StateUpdate{
		Players:   make([]api.PlayerView, 0, len(sessions)),
		Creatures: make([]api.CreatureView, 0, len(w.creatures)),
	}

	for _, s := range sessions {
		update.Players = append(update.Players, api.PlayerView{
			ID:        s.ID.String(),
			X:         s.Pos.X,
			Y:         s.Pos.Y,
			Direction: s.Facing.String(),
		})
	}

	for _, c := range w.creatures {
		update.Creatures = append(update.Creatures, api.CreatureView{
			X:         c.Pos.X,
			Y:         c.Pos.Y,
			Direction: c.Facing.String(),
			Tier:      c.Tier.String(),
		})
	}

	left := roundDuration - w.Elapsed(now)
	if left < 0 {
		left = 0
	}
	update.TimeLeft = left.Seconds()
	return update
}
