package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"photohunt-server/internal/domain"
)

// ScoreRecorder - внешнее хранилище истории счета
type ScoreRecorder interface {
	Record(ctx context.Context, entry domain.ScoreEntry) error
}

// finalScores считает итоги раунда для всех подключенных охотников
func (w *World) finalScores(now time.Time) []domain.ScoreEntry {
	sessions := w.Sessions()
	entries := make([]domain.ScoreEntry, 0, len(sessions))
	for _, s := range sessions {
		entries = append(entries, domain.ScoreEntry{
			SessionID:  s.ID,
			PlayerName: s.Name,
			Level:      w.level,
			Score:      s.Score(),
			TimeTaken:  w.Elapsed(now),
			RecordedAt: now,
		})
	}
	return entries
}

// recordScores отдает итоги хранилищу в фоне, не задерживая тик
func (s *GameService) recordScores(entries []domain.ScoreEntry) {
	if s.scores == nil || len(entries) == 0 {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ScoreTimeout)
		defer cancel()

		for _, e := range entries {
			if err := s.scores.Record(ctx, e); err != nil {
				s.log.WithError(err).WithFields(logrus.Fields{
					"session_id": e.SessionID,
					"level":      e.Level,
				}).Warn("failed to record score")
			}
		}
	}()
}
