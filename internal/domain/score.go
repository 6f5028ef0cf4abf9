package domain

import "time"

// ScoreEntry - итог раунда для одного охотника
type ScoreEntry struct {
	SessionID  SessionID     `json:"session_id"`
	PlayerName string        `json:"player_name"`
	Level      int           `json:"level"`
	Score      int           `json:"score"`
	TimeTaken  time.Duration `json:"time_taken"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Better - true, если e стоит выше other в таблице: больше очков, при равенстве раньше
func (e ScoreEntry) Better(other ScoreEntry) bool {
	if e.Score != other.Score {
		return e.Score > other.Score
	}
	return e.RecordedAt.Before(other.RecordedAt)
}
