package session

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
)

// replyOffset keeps the bot entry strictly after the user entry it answers.
const replyOffset = time.Millisecond

// Pending identifies the conversation a delayed reply was requested for.
type Pending struct {
	Epoch   uint64
	Content string
	Bot     bot.Bot
}

// Prepare checks the send preconditions without changing state. The returned
// Pending can be delivered later with SendMessageAt.
func (s *Store) Prepare(content string) (Pending, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trimmed, err := s.checkSend(content)
	if err != nil {
		return Pending{}, err
	}
	return Pending{Epoch: s.epoch, Content: trimmed, Bot: *s.bot}, nil
}

// SendMessage appends the user entry and a canned bot reply to the active
// transcript. Blank content, a missing user or a missing bot is a no-op
// reported through one of the Err* sentinels.
func (s *Store) SendMessage(content string) (chat.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(content)
}

// SendMessageAt is SendMessage for a reply prepared earlier. It is dropped
// with ErrStaleReply when the conversation changed in between.
func (s *Store) SendMessageAt(p Pending) (chat.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Epoch != s.epoch {
		return chat.Exchange{}, ErrStaleReply
	}
	return s.send(p.Content)
}

func (s *Store) checkSend(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrBlankContent
	}
	if s.user == nil {
		return "", ErrNotAuthenticated
	}
	if s.bot == nil {
		return "", ErrNoActiveBot
	}
	return trimmed, nil
}

func (s *Store) send(content string) (chat.Exchange, error) {
	trimmed, err := s.checkSend(content)
	if err != nil {
		return chat.Exchange{}, err
	}

	active := *s.bot
	sentAt := s.now()
	ex := chat.Exchange{
		User: chat.Message{
			ID:        uuid.NewString(),
			Content:   trimmed,
			Sender:    chat.SenderUser,
			Timestamp: sentAt,
			BotID:     active.ID,
		},
		Bot: chat.Message{
			ID:        uuid.NewString(),
			Content:   active.Name + ": " + active.Responses[s.picker.IntN(len(active.Responses))],
			Sender:    chat.SenderBot,
			Timestamp: sentAt.Add(replyOffset),
			BotID:     active.ID,
		},
	}
	s.transcript = append(s.transcript, ex.User, ex.Bot)

	s.log.WithFields(logrus.Fields{
		"bot":      active.ID,
		"messages": len(s.transcript),
	}).Debug("message routed")
	return ex, nil
}
