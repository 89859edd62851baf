package session

import (
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/service/history"
)

// StartNewConversation archives a non-empty active transcript and resets it.
// It reports whether anything was archived. The selected bot is unchanged.
func (s *Store) StartNewConversation() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.transcript) == 0 {
		return false
	}
	s.history = append(s.history, s.transcript)
	s.transcript = nil
	s.epoch++

	s.log.WithField("history", len(s.history)).Debug("conversation archived")
	return true
}

// History returns the archived transcripts in archival order.
func (s *Store) History() [][]chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([][]chat.Message, len(s.history))
	for i, t := range s.history {
		out[i] = append([]chat.Message(nil), t...)
	}
	return out
}

// DeleteSession removes the archived transcript a session id points at.
// Unknown or malformed ids are ignored.
func (s *Store) DeleteSession(id string) bool {
	idx, ok := history.ParseSessionID(id)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx >= len(s.history) {
		return false
	}
	s.history = slices.Delete(s.history, idx, idx+1)

	s.log.WithFields(logrus.Fields{
		"session": id,
		"history": len(s.history),
	}).Debug("archived transcript deleted")
	return true
}
