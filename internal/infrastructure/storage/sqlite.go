package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"photohunt-server/internal/domain"
)

const createScoresTableSQL = `
CREATE TABLE IF NOT EXISTS Scores (
    ID INTEGER PRIMARY KEY AUTOINCREMENT,
    SessionID TEXT NOT NULL,
    PlayerName TEXT NOT NULL,
    Level INTEGER NOT NULL,
    Score INTEGER NOT NULL,
    TimeTakenMs INTEGER NOT NULL,
    RecordedAt INTEGER NOT NULL
);
`

const createScoresIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_scores_level ON Scores (Level, Score DESC, RecordedAt ASC);
`

const insertScoreSQL = `
INSERT INTO Scores (SessionID, PlayerName, Level, Score, TimeTakenMs, RecordedAt)
VALUES (?, ?, ?, ?, ?, ?);
`

const selectTopSQL = `
SELECT SessionID, PlayerName, Level, Score, TimeTakenMs, RecordedAt
FROM Scores
WHERE Level = ?
ORDER BY Score DESC, RecordedAt ASC
LIMIT ?;
`

// SQLiteStore хранит все результаты в файле; таблица лидеров - выборка лучших.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore открывает (или создает) базу по пути path.
// ":memory:" годится для тестов.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// sqlite не любит параллельных писателей
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{createScoresTableSQL, createScoresIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize scores schema: %w", err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, entry domain.ScoreEntry) error {
	if err := checkEntry(entry); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, insertScoreSQL,
		entry.SessionID.String(),
		entry.PlayerName,
		entry.Level,
		entry.Score,
		entry.TimeTaken.Milliseconds(),
		entry.RecordedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert score for level %d: %w", entry.Level, err)
	}
	return nil
}

func (s *SQLiteStore) Top(ctx context.Context, level, limit int) ([]domain.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, selectTopSQL, level, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to query scores for level %d: %w", level, err)
	}
	defer rows.Close()

	var entries []domain.ScoreEntry
	for rows.Next() {
		var (
			e          domain.ScoreEntry
			sessionID  string
			takenMs    int64
			recordedNs int64
		)
		if err := rows.Scan(&sessionID, &e.PlayerName, &e.Level, &e.Score, &takenMs, &recordedNs); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		e.SessionID = domain.SessionID(sessionID)
		e.TimeTaken = time.Duration(takenMs) * time.Millisecond
		e.RecordedAt = time.Unix(0, recordedNs).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
