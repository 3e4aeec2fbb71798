package service

import (
	"sync"

	"ironlog/workout-app/internal/domain"
)

// ChatLog is the process-local, append-only advisory conversation, one
// sequence per user. It deliberately does not persist across restarts; the
// stored profile and plans carry the durable context instead.
type ChatLog struct {
	mu       sync.Mutex
	messages map[string][]domain.ChatMessage // keyed by user ID hex
}

// NewChatLog creates an empty chat log.
func NewChatLog() *ChatLog {
	return &ChatLog{
		messages: make(map[string][]domain.ChatMessage),
	}
}

// Append adds a message to the end of the user's sequence.
func (l *ChatLog) Append(userID string, message domain.ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[userID] = append(l.messages[userID], message)
}

// Messages returns a copy of the user's full sequence, oldest first.
func (l *ChatLog) Messages(userID string) []domain.ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored := l.messages[userID]
	out := make([]domain.ChatMessage, len(stored))
	copy(out, stored)
	return out
}
