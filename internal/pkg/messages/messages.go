package messages

import (
	"sync"
	"time"
)

// Message is one non-blocking notification for the message area: server
// and transport errors, submission confirmations, and the like.
type Message struct {
	Text    string    `json:"text"`
	Success bool      `json:"success"`
	At      time.Time `json:"at"`
}

// Log is a bounded in-memory message surface. Errors never block or clear
// rendered content; they queue here until the UI drains them.
type Log struct {
	mu      sync.Mutex
	pending []Message
	limit   int
}

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = 20
	}
	return &Log{limit: limit}
}

func (l *Log) Show(text string, success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pending = append(l.pending, Message{Text: text, Success: success, At: time.Now()})
	if len(l.pending) > l.limit {
		l.pending = l.pending[len(l.pending)-l.limit:]
	}
}

// Drain returns and clears all pending messages in arrival order.
func (l *Log) Drain() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.pending
	l.pending = nil
	return out
}
