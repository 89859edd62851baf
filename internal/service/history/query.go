// Package history projects archived transcripts into browsable sessions and
// renders them for export. Nothing here mutates its input.
package history

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
)

// SortMode selects the ordering of listed sessions.
type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortOldest   SortMode = "oldest"
	SortMessages SortMode = "messages"
)

// AllBots disables the bot filter.
const AllBots = "all"

const (
	sessionPrefix  = "session-"
	titleRunes     = 50
	titleEllipsis  = "..."
	untitledThread = "New Chat"
)

// Query holds the history screen controls.
type Query struct {
	Search string
	Sort   SortMode
	BotID  string
}

// SessionID is the positional identifier of the archived transcript at index.
func SessionID(index int) string {
	return sessionPrefix + strconv.Itoa(index)
}

// ParseSessionID is the inverse of SessionID.
func ParseSessionID(id string) (int, bool) {
	raw, ok := strings.CutPrefix(id, sessionPrefix)
	if !ok {
		return 0, false
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || strconv.Itoa(idx) != raw {
		return 0, false
	}
	return idx, true
}

// Project derives one session per archived transcript, in archival order.
// now stands in for the creation time of empty transcripts.
func Project(transcripts [][]chat.Message, now time.Time) []chat.Session {
	sessions := make([]chat.Session, len(transcripts))
	for i, messages := range transcripts {
		sessions[i] = project(i, messages, now)
	}
	return sessions
}

func project(index int, messages []chat.Message, now time.Time) chat.Session {
	s := chat.Session{
		ID:           SessionID(index),
		Title:        untitledThread,
		Messages:     messages,
		BotID:        bot.DefaultID,
		CreatedAt:    now,
		MessageCount: len(messages),
	}
	if len(messages) == 0 {
		return s
	}

	first := messages[0]
	s.Title = truncate(first.Content, titleRunes) + titleEllipsis
	if first.BotID != "" {
		s.BotID = first.BotID
	}
	if !first.Timestamp.IsZero() {
		s.CreatedAt = first.Timestamp
	}
	return s
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// List projects the transcripts and applies search, bot filter and sort.
func List(transcripts [][]chat.Message, q Query, now time.Time) []chat.Session {
	sessions := Project(transcripts, now)
	term := strings.ToLower(q.Search)

	out := make([]chat.Session, 0, len(sessions))
	for _, s := range sessions {
		if Matches(s, term) && matchesBot(s, q.BotID) {
			out = append(out, s)
		}
	}

	switch q.Sort {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b chat.Session) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortOldest:
		slices.SortStableFunc(out, func(a, b chat.Session) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortMessages:
		slices.SortStableFunc(out, func(a, b chat.Session) int {
			return cmp.Compare(b.MessageCount, a.MessageCount)
		})
	}
	return out
}

// Matches reports whether the title or any message contains term,
// ignoring case. An empty term matches every session.
func Matches(s chat.Session, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(s.Title), term) {
		return true
	}
	for _, m := range s.Messages {
		if strings.Contains(strings.ToLower(m.Content), term) {
			return true
		}
	}
	return false
}

func matchesBot(s chat.Session, botID string) bool {
	return botID == "" || botID == AllBots || s.BotID == botID
}

// Find projects the single session with the given id.
func Find(transcripts [][]chat.Message, id string, now time.Time) (chat.Session, bool) {
	idx, ok := ParseSessionID(id)
	if !ok || idx >= len(transcripts) {
		return chat.Session{}, false
	}
	return project(idx, transcripts[idx], now), true
}
