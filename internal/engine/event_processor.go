package engine

import (
	"photohunt-server/internal/domain"
)

// intent - событие, привязанное к сессии в момент извлечения из очереди.
// Если сессия отключится позже в этом же тике, намерение все равно применится.
type intent struct {
	session *domain.Session
	event   domain.ClientEvent
}

// Dedupe оставляет первое событие каждой сессии (по порядку поступления).
// Ключ - только сессия, не тип события: за тик нельзя и пойти, и снять.
func Dedupe(events []domain.ClientEvent) []domain.ClientEvent {
	seen := make(map[domain.SessionID]struct{}, len(events))
	out := make([]domain.ClientEvent, 0, len(events))
	for _, ev := range events {
		if _, dup := seen[ev.Session]; dup {
			continue
		}
		seen[ev.Session] = struct{}{}
		out = append(out, ev)
	}
	return out
}

// collectIntents забирает очередь, убирает дубликаты и привязывает события к сессиям.
// События неизвестных сессий и не-игровые действия отбрасываются.
func (w *World) collectIntents() []intent {
	events := Dedupe(w.Events.Drain())

	intents := make([]intent, 0, len(events))
	for _, ev := range events {
		if !ev.Action.IsIntent() {
			continue
		}
		s, ok := w.sessions[ev.Session]
		if !ok {
			w.log.WithField("session_id", ev.Session).Debug("dropping event from unknown session")
			continue
		}
		intents = append(intents, intent{session: s, event: ev})
	}
	return intents
}
