// Package notify delivers asynchronous text pushes to players. Delivery is
// best-effort: a failed push never fails the game operation that caused it.
package notify

import (
	"context"
	"sync"
)

// Notifier pushes text to a platform user and looks up display names.
type Notifier interface {
	// SendText reports whether the message was accepted for delivery.
	SendText(ctx context.Context, userID, text string) bool
	// FetchDisplayName returns "" when the name is unknown or the lookup fails.
	FetchDisplayName(ctx context.Context, userID string) string
}

// Nop is used when no platform client is configured.
type Nop struct{}

func (Nop) SendText(context.Context, string, string) bool { return false }
func (Nop) FetchDisplayName(context.Context, string) string { return "" }

// Recorder collects pushes in memory. It is useful for tests and local runs.
type Recorder struct {
	Names map[string]string

	mu       sync.Mutex
	messages []Message
}

// Message is one recorded push.
type Message struct {
	UserID string
	Text   string
}

func (r *Recorder) SendText(_ context.Context, userID, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{UserID: userID, Text: text})
	return true
}

func (r *Recorder) FetchDisplayName(_ context.Context, userID string) string {
	return r.Names[userID]
}

// To returns the texts pushed to userID in order.
func (r *Recorder) To(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.messages {
		if m.UserID == userID {
			out = append(out, m.Text)
		}
	}
	return out
}

// Messages returns a copy of every recorded push.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Reset drops recorded pushes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
