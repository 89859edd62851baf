package session

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/model/user"
	"github.com/zhouzirui/bot-hub/backend/internal/store/kv"
)

// Picker chooses an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Picker interface {
	IntN(n int) int
}

type globalPicker struct{}

func (globalPicker) IntN(n int) int { return rand.IntN(n) }

// Option customizes a Store.
type Option func(*Store)

// WithPicker replaces the random reply selector.
func WithPicker(p Picker) Option {
	return func(s *Store) { s.picker = p }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for state transitions.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) { s.log = logrus.NewEntry(l) }
}

// Store is the single owner of the signed-in user, the selected bot, the
// active transcript, the archived history and the theme preference.
type Store struct {
	mu     sync.RWMutex
	kv     kv.Store
	picker Picker
	now    func() time.Time
	log    *logrus.Entry

	user       *user.User
	bot        *bot.Bot
	transcript []chat.Message
	history    [][]chat.Message
	theme      user.Theme
	// epoch advances whenever the conversation a pending reply belongs to
	// goes away.
	epoch uint64
}

// NewStore returns an empty store backed by durable storage. Call Restore to
// load the persisted user and theme.
func NewStore(storage kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     storage,
		picker: globalPicker{},
		now:    func() time.Time { return time.Now().UTC() },
		log:    logrus.NewEntry(logrus.StandardLogger()),
		theme:  user.ThemeSystem,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot is a read-only copy of the store state.
type Snapshot struct {
	User          *user.User     `json:"user"`
	Authenticated bool           `json:"authenticated"`
	Bot           *bot.Bot       `json:"bot"`
	Messages      []chat.Message `json:"messages"`
	HistorySize   int            `json:"historySize"`
	Theme         user.Theme     `json:"theme"`
}

// Restore reads the persisted user and theme. Unreadable values are logged and
// skipped so a corrupt entry never blocks startup.
func (s *Store) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, kv.KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("restore %s: %w", kv.KeyCurrentUser, err)
	}
	if ok {
		var u user.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			s.log.WithError(err).Warn("ignoring unreadable persisted user")
		} else {
			s.user = &u
		}
	}

	raw, ok, err = s.kv.Get(ctx, kv.KeyCurrentTheme)
	if err != nil {
		return fmt.Errorf("restore %s: %w", kv.KeyCurrentTheme, err)
	}
	if ok {
		theme, err := user.ParseTheme(raw)
		if err != nil {
			s.log.WithError(err).Warn("ignoring unreadable persisted theme")
		} else {
			s.theme = theme
		}
	}

	s.log.WithFields(logrus.Fields{
		"authenticated": s.user != nil,
		"theme":         s.theme,
	}).Info("session restored")
	return nil
}

// Login replaces the current user and persists it. Any user is accepted.
// Signing in as someone else drops the previous user's bot selection and
// active transcript along with any reply still pending for them.
func (s *Store) Login(ctx context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil && s.user.ID != u.ID {
		s.bot = nil
		s.transcript = nil
		s.epoch++
	}
	s.user = &u
	return s.persistUser(ctx)
}

// Logout clears the user, the bot selection and the active transcript.
// History is kept.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.bot = nil
	s.transcript = nil
	s.epoch++

	if err := s.kv.Delete(ctx, kv.KeyCurrentUser); err != nil {
		return fmt.Errorf("clear %s: %w", kv.KeyCurrentUser, err)
	}
	return nil
}

// UpdateUser merges the patch into the current user and persists the result.
func (s *Store) UpdateUser(ctx context.Context, patch user.Patch) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return user.User{}, ErrNotAuthenticated
	}
	updated := patch.Apply(*s.user)
	s.user = &updated
	if err := s.persistUser(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// CurrentUser returns the signed-in user, if any.
func (s *Store) CurrentUser() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

// SelectBot makes b the active persona. The active transcript is kept, so a
// conversation may continue with a different bot.
func (s *Store) SelectBot(b bot.Bot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bot != nil && s.bot.ID != b.ID {
		s.epoch++
	}
	s.bot = &b
	s.log.WithField("bot", b.ID).Debug("bot selected")
}

// SelectedBot returns the active persona, if any.
func (s *Store) SelectedBot() (bot.Bot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bot == nil {
		return bot.Bot{}, false
	}
	return *s.bot, true
}

// SetTheme persists the appearance preference.
func (s *Store) SetTheme(ctx context.Context, theme user.Theme) error {
	if _, err := user.ParseTheme(string(theme)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.theme = theme
	if err := s.kv.Set(ctx, kv.KeyCurrentTheme, string(theme)); err != nil {
		return fmt.Errorf("persist %s: %w", kv.KeyCurrentTheme, err)
	}
	return nil
}

// Theme returns the appearance preference.
func (s *Store) Theme() user.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Transcript returns a copy of the active transcript.
func (s *Store) Transcript() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]chat.Message(nil), s.transcript...)
}

// Snapshot copies the whole state for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Authenticated: s.user != nil,
		Messages:      append([]chat.Message{}, s.transcript...),
		HistorySize:   len(s.history),
		Theme:         s.theme,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	if s.bot != nil {
		b := *s.bot
		snap.Bot = &b
	}
	return snap
}

func (s *Store) persistUser(ctx context.Context) error {
	data, err := json.Marshal(s.user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", kv.KeyCurrentUser, err)
	}
	return nil
}
