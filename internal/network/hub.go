package network

import (
	"github.com/sasha-s/go-deadlock"

	"photohunt-server/internal/domain"
	"photohunt-server/pkg/api"
)

// DefaultMailboxSize - сколько сообщений может ждать клиента, прежде чем он считается медленным
const DefaultMailboxSize = 64

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Отправка никогда не блокирует: переполненный ящик означает отказ доставки.
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[domain.SessionID]chan api.ServerResponse
	mailbox     int
}

func NewBroadcaster(mailbox int) *Broadcaster {
	if mailbox <= 0 {
		mailbox = DefaultMailboxSize
	}
	return &Broadcaster{
		subscribers: make(map[domain.SessionID]chan api.ServerResponse),
		mailbox:     mailbox,
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(id domain.SessionID) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, b.mailbox)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id domain.SessionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
// false - подписчика нет или его ящик полон.
func (b *Broadcaster) SendTo(id domain.SessionID, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

// Broadcast отправляет всем и возвращает тех, кому доставить не удалось
func (b *Broadcaster) Broadcast(msg api.ServerResponse) []domain.SessionID {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var failed []domain.SessionID
	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			failed = append(failed, id)
		}
	}
	return failed
}

// HasSubscriber проверяет, есть ли у сессии живой канал
func (b *Broadcaster) HasSubscriber(id domain.SessionID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
