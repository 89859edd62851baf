package chat

import "time"

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one immutable transcript entry. BotID records the persona that
// was active when the entry was created, so a transcript may mix bots.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	BotID     string    `json:"botId"`
}

// Exchange pairs a user entry with the bot reply produced for it.
type Exchange struct {
	User Message `json:"user"`
	Bot  Message `json:"bot"`
}
