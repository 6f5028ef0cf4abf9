package systems

import (
	"photohunt-server/internal/domain"
)

// PhotoResult - кто попал в кадр
type PhotoResult struct {
	Creatures []domain.CreatureID
	Rivals    []domain.SessionID
}

// TakePicture бросает луч снимка вдоль взгляда охотника и записывает результат в сессию.
// Повторный снимок того же зверя счет не меняет.
func TakePicture(s *domain.Session, w WorldView, photoRange int) PhotoResult {
	var res PhotoResult

	CastRay(w.Map(), s.Pos, s.Facing, photoRange, StopAfter, func(pos domain.Position) bool {
		if c := w.CreatureAt(pos); c != nil {
			s.RecordCreature(c.ID)
			res.Creatures = append(res.Creatures, c.ID)
		}
		if rival := w.SessionAt(pos); rival != nil && rival.ID != s.ID {
			s.PhotographedRival = true
			res.Rivals = append(res.Rivals, rival.ID)
		}
		return false
	})

	return res
}
