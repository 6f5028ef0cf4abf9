package domain

// SessionID - идентификатор подключения, выдается при коннекте
type SessionID string

func (id SessionID) String() string {
	return string(id)
}

// RivalScore - счет охотника, сфотографировавшего соперника
const RivalScore = -1

// Session - серверное состояние одного охотника.
// Создается при подключении, сбрасывается в начале раунда, удаляется при отключении.
type Session struct {
	ID   SessionID `json:"id"`
	Name string    `json:"name,omitempty"`
	Entity

	Photographed      map[CreatureID]struct{} `json:"-"`
	PhotographedRival bool                    `json:"photographedRival"`
}

// NewSession создает сессию в позиции pos
func NewSession(id SessionID, name string, pos Position) *Session {
	return &Session{
		ID:           id,
		Name:         name,
		Entity:       NewEntity(pos),
		Photographed: make(map[CreatureID]struct{}),
	}
}

// Reset очищает результаты раунда
func (s *Session) Reset() {
	s.Photographed = make(map[CreatureID]struct{})
	s.PhotographedRival = false
}

// RecordCreature добавляет зверя в набор снимков. Повторный снимок ничего не меняет.
func (s *Session) RecordCreature(id CreatureID) {
	if s.Photographed == nil {
		s.Photographed = make(map[CreatureID]struct{})
	}
	s.Photographed[id] = struct{}{}
}

// Score - число разных зверей на снимках или RivalScore
func (s *Session) Score() int {
	if s.PhotographedRival {
		return RivalScore
	}
	return len(s.Photographed)
}
