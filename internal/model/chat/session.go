package chat

import "time"

// Session is a read-only summary of one archived transcript. It is derived on
// demand and never stored.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	BotID        string    `json:"botId"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}
