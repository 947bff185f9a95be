package network

import (
	"sync"

	"boingle/pkg/api"
	"boingle/pkg/logger"

	"github.com/sirupsen/logrus"
)

// SubscriberBuffer - размер личного канала подписчика.
// Медленный клиент теряет кадры, а не тормозит симуляцию.
const SubscriberBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan api.ServerResponse
	dropped     map[string]int
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
		dropped:     make(map[string]int),
	}
}

// Register создает личный канал для клиента (браузер или бот)
func (b *Broadcaster) Register(clientID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, SubscriberBuffer)
	b.subscribers[clientID] = ch
	b.dropped[clientID] = 0
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
		if n := b.dropped[clientID]; n > 0 {
			logger.For("hub").WithFields(logrus.Fields{
				"client":  clientID,
				"dropped": n,
			}).Info("Subscriber dropped messages")
		}
		delete(b.dropped, clientID)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		msg.ClientID = clientID
		b.push(clientID, ch, msg)
	}
}

// Broadcast отправляет всем подключенным клиентам
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		b.push(id, ch, msg)
	}
}

func (b *Broadcaster) push(id string, ch chan api.ServerResponse, msg api.ServerResponse) {
	select {
	case ch <- msg:
	default:
		b.dropped[id]++
	}
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Dropped - сколько сообщений клиент не успел принять.
func (b *Broadcaster) Dropped(clientID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped[clientID]
}
