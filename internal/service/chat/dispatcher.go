// Package chat delivers bot replies after an artificial typing delay and
// broadcasts transcript changes to connected clients.
package chat

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/config"
	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/service/session"
)

var ErrClosed = errors.New("dispatcher closed")

// Dispatcher schedules delayed replies against a session store. A reply is
// created only when its timer fires, and only if the conversation it was
// requested for is still active.
type Dispatcher struct {
	store *session.Store
	pub   Publisher
	delay func() time.Duration
	log   *logrus.Entry

	mu      sync.Mutex
	pending map[uint64]*time.Timer
	next    uint64
	closed  bool
	wg      sync.WaitGroup
}

// NewDispatcher draws each delay uniformly from the configured window.
func NewDispatcher(store *session.Store, pub Publisher, cfg config.ChatConfig, logger *logrus.Logger) *Dispatcher {
	return NewDispatcherWithDelay(store, pub, UniformDelay(cfg.ReplyDelayMin, cfg.ReplyDelayMax), logger)
}

// NewDispatcherWithDelay uses a caller-supplied delay source.
func NewDispatcherWithDelay(store *session.Store, pub Publisher, delay func() time.Duration, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		store:   store,
		pub:     pub,
		delay:   delay,
		log:     logger.WithField("component", "dispatcher"),
		pending: make(map[uint64]*time.Timer),
	}
}

// UniformDelay returns a source of durations in [lo, hi].
func UniformDelay(lo, hi time.Duration) func() time.Duration {
	return func() time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo+1)
	}
}

// Submit validates the send preconditions now and schedules the exchange.
// No-op conditions are returned unchanged (see session.IsNoop) and nothing is
// scheduled for them.
func (d *Dispatcher) Submit(content string) error {
	p, err := d.store.Prepare(content)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	ticket := d.next
	d.next++
	wait := d.delay()
	d.wg.Add(1)
	// Holding mu keeps a zero-delay callback from running before the timer
	// is registered, and from announcing typing off before typing on.
	d.pub.Publish(chat.NewEvent(chat.EventTyping, chat.TypingState{Active: true, BotID: p.Bot.ID}))
	d.pending[ticket] = time.AfterFunc(wait, func() { d.deliver(ticket, p) })
	d.mu.Unlock()

	d.log.WithFields(logrus.Fields{"bot": p.Bot.ID, "delay": wait}).Debug("reply scheduled")
	return nil
}

func (d *Dispatcher) deliver(ticket uint64, p session.Pending) {
	defer d.wg.Done()

	ex, err := d.store.SendMessageAt(p)

	d.mu.Lock()
	delete(d.pending, ticket)
	remaining := len(d.pending)
	d.mu.Unlock()

	switch {
	case err == nil:
		d.pub.Publish(chat.NewEvent(chat.EventMessage, ex.User))
		d.pub.Publish(chat.NewEvent(chat.EventMessage, ex.Bot))
	case session.IsNoop(err):
		d.log.WithFields(logrus.Fields{"bot": p.Bot.ID, "reason": err}).Info("reply dropped")
		d.pub.Publish(chat.NewEvent(chat.EventReplyCancelled, chat.TypingState{BotID: p.Bot.ID}))
	default:
		d.log.WithError(err).Error("reply delivery failed")
	}

	if remaining == 0 {
		d.pub.Publish(chat.NewEvent(chat.EventTyping, chat.TypingState{Active: false}))
	}
}

// StartNewConversation archives the active transcript and announces it.
func (d *Dispatcher) StartNewConversation() bool {
	archived := d.store.StartNewConversation()
	if archived {
		d.pub.Publish(chat.NewEvent(chat.EventArchived, map[string]int{"historySize": d.store.Snapshot().HistorySize}))
	}
	return archived
}

// Typing reports whether a reply is still pending.
func (d *Dispatcher) Typing() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending) > 0
}

// Close cancels every timer that has not fired yet and waits for running
// deliveries to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	for ticket, t := range d.pending {
		if t.Stop() {
			delete(d.pending, ticket)
			d.wg.Done()
		}
	}
	d.mu.Unlock()

	d.wg.Wait()
}
