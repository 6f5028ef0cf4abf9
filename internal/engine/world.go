package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"photohunt-server/internal/domain"
	"photohunt-server/pkg/logger"
)

// LayoutSource отдает раскладку уровня. dungeon.LevelStore реализует этот интерфейс.
type LayoutSource interface {
	Layout(level int) ([]string, error)
}

// World - World Context: карта, сессии, звери, очередь событий и часы раунда.
// Все, кроме Events, меняется только из цикла тиков.
type World struct {
	cfg    Config
	levels LayoutSource
	rng    *rand.Rand
	log    *logrus.Entry

	gameMap   *domain.GameMap
	level     int
	startedAt time.Time

	sessions  map[domain.SessionID]*domain.Session
	order     []domain.SessionID // порядок подключения
	creatures []*domain.Creature

	Events *EventQueue
}

// NewWorld создает мир и загружает карту минимального уровня, чтобы было куда ставить
// подключившихся охотников до первого раунда.
func NewWorld(cfg Config, levels LayoutSource, rng *rand.Rand) (*World, error) {
	w := &World{
		cfg:      cfg,
		levels:   levels,
		rng:      rng,
		log:      logger.Log.WithField("component", "world"),
		sessions: make(map[domain.SessionID]*domain.Session),
		Events:   NewEventQueue(),
	}

	m, err := w.buildMap(cfg.MinLevel)
	if err != nil {
		return nil, fmt.Errorf("load lobby map: %w", err)
	}
	w.gameMap = m
	w.level = cfg.MinLevel
	return w, nil
}

// --- systems.WorldView ---

func (w *World) Map() *domain.GameMap { return w.gameMap }

// Sessions возвращает сессии в порядке подключения
func (w *World) Sessions() []*domain.Session {
	out := make([]*domain.Session, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.sessions[id])
	}
	return out
}

func (w *World) SessionAt(pos domain.Position) *domain.Session {
	for _, id := range w.order {
		if s := w.sessions[id]; s.Pos == pos {
			return s
		}
	}
	return nil
}

func (w *World) CreatureAt(pos domain.Position) *domain.Creature {
	for _, c := range w.creatures {
		if c.Pos == pos {
			return c
		}
	}
	return nil
}

// IsOccupied - в клетке стоит охотник или зверь
func (w *World) IsOccupied(pos domain.Position) bool {
	return w.SessionAt(pos) != nil || w.CreatureAt(pos) != nil
}

// --- Сессии ---

// Session ищет сессию по ID
func (w *World) Session(id domain.SessionID) (*domain.Session, bool) {
	s, ok := w.sessions[id]
	return s, ok
}

// SessionCount - количество подключенных охотников
func (w *World) SessionCount() int { return len(w.order) }

// AddSession создает сессию на случайной свободной клетке EMPTY
func (w *World) AddSession(id domain.SessionID, name string) (*domain.Session, error) {
	if _, exists := w.sessions[id]; exists {
		return nil, fmt.Errorf("session %s already exists", id)
	}

	pos, err := w.gameMap.RandomEmptyCell(w.rng, w.IsOccupied)
	if err != nil {
		return nil, fmt.Errorf("place session %s: %w", id, err)
	}

	s := domain.NewSession(id, name, pos)
	w.sessions[id] = s
	w.order = append(w.order, id)

	w.log.WithFields(logrus.Fields{"session_id": id, "pos": pos}).Info("session added")
	return s, nil
}

// RemoveSession удаляет сессию и ее еще не забранные события.
// Отсутствующая сессия - не ошибка: гонки отключения ожидаемы.
func (w *World) RemoveSession(id domain.SessionID) bool {
	if _, ok := w.sessions[id]; !ok {
		return false
	}
	delete(w.sessions, id)
	for i, other := range w.order {
		if other == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}

	dropped := w.Events.Purge(id)
	w.log.WithFields(logrus.Fields{"session_id": id, "dropped_events": dropped}).Info("session removed")
	return true
}

// --- Звери и раунд ---

// Creatures возвращает зверей текущего раунда
func (w *World) Creatures() []*domain.Creature { return w.creatures }

// Level - номер текущего уровня
func (w *World) Level() int { return w.level }

// StartedAt - время начала раунда
func (w *World) StartedAt() time.Time { return w.startedAt }

// Start фиксирует начало раунда
func (w *World) Start(now time.Time) { w.startedAt = now }

// Elapsed - сколько прошло с начала раунда
func (w *World) Elapsed(now time.Time) time.Duration { return now.Sub(w.startedAt) }

// Reset готовит мир к раунду на уровне level: новая карта, новый состав зверей,
// охотники на новых местах с чистыми результатами, пустая очередь.
// Все собирается заранее; при ошибке мир остается прежним.
func (w *World) Reset(level int) error {
	if level < w.cfg.MinLevel || level > w.cfg.MaxLevel {
		return fmt.Errorf("level %d not in %d..%d: %w", level, w.cfg.MinLevel, w.cfg.MaxLevel, domain.ErrLevelOutOfRange)
	}

	round, err := w.buildRound(level, w.order)
	if err != nil {
		return err
	}

	w.gameMap = round.gameMap
	w.level = level
	w.creatures = round.creatures
	for _, id := range w.order {
		s := w.sessions[id]
		s.Reset()
		s.Entity = domain.NewEntity(round.sessionPos[id])
	}
	w.Events.Clear()

	w.log.WithFields(logrus.Fields{
		"level":     level,
		"creatures": len(round.creatures),
		"sessions":  len(w.order),
	}).Info("world reset")
	return nil
}

// CheckInvariants проверяет, что никто не стоит вне карты, на препятствии или в чужой клетке
func (w *World) CheckInvariants() error {
	occupied := make(map[domain.Position]string)
	check := func(who string, pos domain.Position) error {
		if !w.gameMap.IsPassable(pos) {
			return fmt.Errorf("%s stands on impassable %v", who, pos)
		}
		if other, ok := occupied[pos]; ok {
			return fmt.Errorf("%s shares %v with %s", who, pos, other)
		}
		occupied[pos] = who
		return nil
	}

	for _, s := range w.Sessions() {
		if err := check("session "+s.ID.String(), s.Pos); err != nil {
			return err
		}
	}
	for _, c := range w.creatures {
		if err := check(fmt.Sprintf("creature %d", c.ID), c.Pos); err != nil {
			return err
		}
	}
	return nil
}
