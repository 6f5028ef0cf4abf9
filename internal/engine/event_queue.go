package engine

import (
	"github.com/sasha-s/go-deadlock"

	"photohunt-server/internal/domain"
)

// EventQueue - очередь намерений игроков. Единственная точка синхронизации между
// транспортом (много производителей) и тиком (единственный потребитель).
type EventQueue struct {
	mu     deadlock.Mutex
	events []domain.ClientEvent
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push добавляет событие в конец очереди
func (q *EventQueue) Push(ev domain.ClientEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain забирает все события в порядке поступления и очищает очередь
func (q *EventQueue) Drain() []domain.ClientEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}

// Purge выбрасывает еще не забранные события сессии. Возвращает их количество.
func (q *EventQueue) Purge(id domain.SessionID) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.events[:0]
	for _, ev := range q.events {
		if ev.Session != id {
			kept = append(kept, ev)
		}
	}
	dropped := len(q.events) - len(kept)
	// Обнуляем хвост, чтобы не держать старые события
	for i := len(kept); i < len(q.events); i++ {
		q.events[i] = domain.ClientEvent{}
	}
	q.events = kept
	return dropped
}

// Clear очищает очередь целиком
func (q *EventQueue) Clear() {
	q.mu.Lock()
	q.events = nil
	q.mu.Unlock()
}

// Len - текущая длина очереди
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
