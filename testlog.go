package blendcts

import (
	"slices"
	"sync"
)

// TestLog collects the messages of a run in order. Every message is also
// written to Logger at info level.
type TestLog struct {
	mu       sync.Mutex
	messages []string
}

// Message appends msg.
func (l *TestLog) Message(msg string) {
	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()
	Logger().Info(msg)
}

// Messages returns a copy of the collected messages.
func (l *TestLog) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.messages)
}

// Len returns the number of collected messages.
func (l *TestLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}
