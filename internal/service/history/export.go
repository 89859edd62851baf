package history

import (
	"strings"

	"github.com/zhouzirui/bot-hub/backend/internal/model/chat"
)

// Export renders a session as plain text: one "You: ..." or "AI: ..." line
// per message, separated by a blank line.
func Export(s chat.Session) string {
	lines := make([]string, len(s.Messages))
	for i, m := range s.Messages {
		label := "AI"
		if m.Sender == chat.SenderUser {
			label = "You"
		}
		lines[i] = label + ": " + m.Content
	}
	return strings.Join(lines, "\n\n")
}

// Filename is the download name of an exported session.
func Filename(sessionID string) string {
	return "chat-" + sessionID + ".txt"
}
