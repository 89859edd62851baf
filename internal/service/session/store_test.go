package session

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/bot-hub/backend/internal/model/bot"
	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
	"github.com/zhouzirui/bot-hub/backend/internal/model/user"
	"github.com/zhouzirui/bot-hub/backend/internal/store/kv"
)

type fixedPicker int

func (p fixedPicker) IntN(int) int { return int(p) }

var epoch = time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	clock := epoch
	opts = append([]Option{
		WithPicker(fixedPicker(0)),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	}, opts...)
	return NewStore(mem, opts...), mem
}

func seedBot(t *testing.T, id string) bot.Bot {
	t.Helper()
	catalog, err := bot.NewMemoryStore(bot.Seed())
	require.NoError(t, err)
	b, ok := catalog.FindByID(id)
	require.True(t, ok, id)
	return b
}

func signedIn(t *testing.T, botID string) *Store {
	t.Helper()
	s, _ := newTestStore(t)
	require.NoError(t, s.Login(context.Background(), user.FromCredentials("", "ada@example.com", epoch)))
	s.SelectBot(seedBot(t, botID))
	return s
}

func TestSendMessageAppendsUserThenBot(t *testing.T) {
	s := signedIn(t, "brain-ai")

	ex, err := s.SendMessage("  hi  ")
	require.NoError(t, err)

	msgs := s.Transcript()
	require.Len(t, msgs, 2)
	assert.Equal(t, ex.User, msgs[0])
	assert.Equal(t, ex.Bot, msgs[1])

	assert.Equal(t, chat.SenderUser, msgs[0].Sender)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, chat.SenderBot, msgs[1].Sender)
	assert.True(t, msgs[1].Timestamp.After(msgs[0].Timestamp))
	assert.Equal(t, "brain-ai", msgs[0].BotID)
	assert.Equal(t, "brain-ai", msgs[1].BotID)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
}

func TestSendMessageSeededReply(t *testing.T) {
	s := signedIn(t, "brain-ai")

	for i := 0; i < 100; i++ {
		ex, err := s.SendMessage("hi")
		require.NoError(t, err)
		require.Equal(t, "Brain AI: I'm here to help with any question you have!", ex.Bot.Content)
	}
	assert.Len(t, s.Transcript(), 200)
}

func TestSendMessageUsesPickerWithinRange(t *testing.T) {
	s, _ := newTestStore(t, WithPicker(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, s.Login(context.Background(), user.User{ID: "1"}))
	b := seedBot(t, "code-assistant")
	s.SelectBot(b)

	allowed := make(map[string]bool)
	for _, r := range b.Responses {
		allowed[b.Name+": "+r] = true
	}
	for i := 0; i < 50; i++ {
		ex, err := s.SendMessage("refactor please")
		require.NoError(t, err)
		assert.True(t, allowed[ex.Bot.Content], ex.Bot.Content)
	}
}

func TestSendMessageNoops(t *testing.T) {
	t.Run("blank content", func(t *testing.T) {
		s := signedIn(t, "brain-ai")
		for _, blank := range []string{"", "   ", "\n\t "} {
			_, err := s.SendMessage(blank)
			assert.ErrorIs(t, err, ErrBlankContent)
			assert.True(t, IsNoop(err))
		}
		assert.Empty(t, s.Transcript())
	})

	t.Run("no bot selected", func(t *testing.T) {
		s, _ := newTestStore(t)
		require.NoError(t, s.Login(context.Background(), user.User{ID: "1"}))
		_, err := s.SendMessage("hello")
		assert.ErrorIs(t, err, ErrNoActiveBot)
		assert.Empty(t, s.Transcript())
	})

	t.Run("not signed in", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.SelectBot(seedBot(t, "brain-ai"))
		_, err := s.SendMessage("hello")
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Empty(t, s.Transcript())
	})
}

func TestSwitchingBotKeepsTranscriptAndTagsPerMessage(t *testing.T) {
	s := signedIn(t, "brain-ai")
	_, err := s.SendMessage("first")
	require.NoError(t, err)

	s.SelectBot(seedBot(t, "creative-bot"))
	_, err = s.SendMessage("second")
	require.NoError(t, err)

	msgs := s.Transcript()
	require.Len(t, msgs, 4)
	assert.Equal(t, "brain-ai", msgs[1].BotID)
	assert.Equal(t, "creative-bot", msgs[3].BotID)
	assert.Equal(t, "Creative Bot: Let's create something amazing together!", msgs[3].Content)
}

func TestStartNewConversation(t *testing.T) {
	s := signedIn(t, "brain-ai")
	_, err := s.SendMessage("one")
	require.NoError(t, err)
	_, err = s.SendMessage("two")
	require.NoError(t, err)

	require.True(t, s.StartNewConversation())
	assert.Empty(t, s.Transcript())
	hist := s.History()
	require.Len(t, hist, 1)
	assert.Len(t, hist[0], 4)

	assert.False(t, s.StartNewConversation(), "empty transcript is not archived")
	assert.Len(t, s.History(), 1)

	b, ok := s.SelectedBot()
	require.True(t, ok)
	assert.Equal(t, "brain-ai", b.ID)
}

func TestHistoryIsACopy(t *testing.T) {
	s := signedIn(t, "brain-ai")
	_, err := s.SendMessage("keep me")
	require.NoError(t, err)
	s.StartNewConversation()

	hist := s.History()
	hist[0][0].Content = "mutated"
	hist[0] = nil

	assert.Equal(t, "keep me", s.History()[0][0].Content)
}

func TestDeleteSession(t *testing.T) {
	s := signedIn(t, "brain-ai")
	for _, content := range []string{"a", "b", "c"} {
		_, err := s.SendMessage(content)
		require.NoError(t, err)
		s.StartNewConversation()
	}

	assert.True(t, s.DeleteSession("session-1"))
	hist := s.History()
	require.Len(t, hist, 2)
	assert.Equal(t, "a", hist[0][0].Content)
	assert.Equal(t, "c", hist[1][0].Content)

	assert.False(t, s.DeleteSession("session-9"))
	assert.False(t, s.DeleteSession("bogus"))
	assert.Len(t, s.History(), 2)
}

func TestLoginPersistsAndRestores(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	u := user.FromCredentials("Ada", "ada@example.com", epoch)

	require.NoError(t, s.Login(ctx, u))
	raw, ok, err := mem.Get(ctx, kv.KeyCurrentUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"email":"ada@example.com"`)

	require.NoError(t, s.SetTheme(ctx, user.ThemeDark))

	reloaded := NewStore(mem)
	require.NoError(t, reloaded.Restore(ctx))
	got, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Ada", got.Name)
	assert.True(t, got.CreatedAt.Equal(u.CreatedAt))
	assert.Equal(t, user.ThemeDark, reloaded.Theme())
}

func TestRestoreIgnoresCorruptEntries(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, kv.KeyCurrentUser, "{not json"))
	require.NoError(t, mem.Set(ctx, kv.KeyCurrentTheme, "sepia"))

	s := NewStore(mem)
	require.NoError(t, s.Restore(ctx))
	_, ok := s.CurrentUser()
	assert.False(t, ok)
	assert.Equal(t, user.ThemeSystem, s.Theme())
}

func TestLogoutClearsConversationButKeepsHistory(t *testing.T) {
	s := signedIn(t, "brain-ai")
	ctx := context.Background()
	_, err := s.SendMessage("archived")
	require.NoError(t, err)
	s.StartNewConversation()
	_, err = s.SendMessage("active")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Bot)
	assert.Empty(t, snap.Messages)
	assert.Equal(t, 1, snap.HistorySize)

	_, ok, err := s.kv.Get(ctx, kv.KeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateUser(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	name := "Grace"
	_, err := s.UpdateUser(ctx, user.Patch{Name: &name})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, s.Login(ctx, user.FromCredentials("Ada", "ada@example.com", epoch)))
	empty := ""
	updated, err := s.UpdateUser(ctx, user.Patch{Name: &name, Email: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.Name)
	assert.Empty(t, updated.Email, "profile edit accepts empty values")

	raw, _, err := mem.Get(ctx, kv.KeyCurrentUser)
	require.NoError(t, err)
	assert.Contains(t, raw, `"name":"Grace"`)
}

func TestSetThemeRejectsUnknownValues(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.SetTheme(ctx, "sepia"), user.ErrInvalidTheme)
	assert.Equal(t, user.ThemeSystem, s.Theme())

	require.NoError(t, s.SetTheme(ctx, user.ThemeLight))
	raw, ok, err := mem.Get(ctx, kv.KeyCurrentTheme)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", raw)
}

func TestLoginAsAnotherUserStartsClean(t *testing.T) {
	s := signedIn(t, "brain-ai")
	_, err := s.SendMessage("private to ada")
	require.NoError(t, err)
	ada, _ := s.CurrentUser()

	require.NoError(t, s.Login(context.Background(), ada))
	assert.Len(t, s.Transcript(), 2, "signing in again as the same user keeps the conversation")
	_, ok := s.SelectedBot()
	assert.True(t, ok)

	require.NoError(t, s.Login(context.Background(), user.User{ID: "bob", Name: "bob"}))
	assert.Empty(t, s.Transcript())
	_, ok = s.SelectedBot()
	assert.False(t, ok)
	current, _ := s.CurrentUser()
	assert.Equal(t, "bob", current.ID)
}

func TestStaleReplyIsDropped(t *testing.T) {
	tests := []struct {
		name     string
		navigate func(s *Store)
	}{
		{"switch bot", func(s *Store) { s.SelectBot(seedBot(t, "code-assistant")) }},
		{"new conversation", func(s *Store) {
			_, _ = s.SendMessage("filler")
			s.StartNewConversation()
		}},
		{"login as someone else", func(s *Store) {
			_ = s.Login(context.Background(), user.User{ID: "bob", Name: "bob"})
			s.SelectBot(seedBot(t, "brain-ai"))
		}},
		{"logout then login", func(s *Store) {
			_ = s.Logout(context.Background())
			_ = s.Login(context.Background(), user.User{ID: "2"})
			s.SelectBot(seedBot(t, "brain-ai"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := signedIn(t, "brain-ai")
			pending, err := s.Prepare("late")
			require.NoError(t, err)

			tt.navigate(s)

			_, err = s.SendMessageAt(pending)
			assert.ErrorIs(t, err, ErrStaleReply)
			assert.True(t, IsNoop(err))
			for _, m := range s.Transcript() {
				assert.NotEqual(t, "late", m.Content)
			}
		})
	}
}

func TestPendingReplyDeliveredWhenNothingChanged(t *testing.T) {
	s := signedIn(t, "brain-ai")
	pending, err := s.Prepare(" later ")
	require.NoError(t, err)
	assert.Equal(t, "later", pending.Content)
	assert.Equal(t, "brain-ai", pending.Bot.ID)

	s.SelectBot(seedBot(t, "brain-ai"))

	ex, err := s.SendMessageAt(pending)
	require.NoError(t, err)
	assert.Equal(t, "later", ex.User.Content)
	assert.Len(t, s.Transcript(), 2)
}

func TestPrepareReportsNoops(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Prepare("hi")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = s.Prepare(" ")
	assert.ErrorIs(t, err, ErrBlankContent)
}
