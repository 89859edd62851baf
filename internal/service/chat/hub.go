package chat

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
)

// Publisher receives transcript notifications.
type Publisher interface {
	Publish(event chat.Event)
}

const subscriberBuffer = 32

// Hub fans events out to every connected client. Slow subscribers lose
// events rather than block the publisher.
type Hub struct {
	mu     sync.RWMutex
	subs   map[int]chan chat.Event
	nextID int
	log    *logrus.Entry
}

func NewHub(logger *logrus.Logger) *Hub {
	return &Hub{
		subs: make(map[int]chan chat.Event),
		log:  logger.WithField("component", "hub"),
	}
}

// Subscribe registers a listener. The returned func unregisters it and closes
// the channel.
func (h *Hub) Subscribe() (<-chan chat.Event, func()) {
	ch := make(chan chat.Event, subscriberBuffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *Hub) Publish(event chat.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.log.WithFields(logrus.Fields{"subscriber": id, "event": event.Type}).Warn("dropping event for slow subscriber")
		}
	}
}

// Subscribers reports the number of live listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
