package notify

import (
	"context"
	"sync"
)

// Severity selects how a notification is presented.
type Severity string

const (
	// SeverityNormal is an informational or success message.
	SeverityNormal Severity = "normal"
	// SeverityDestructive flags a failure the user must act on.
	SeverityDestructive Severity = "destructive"
)

// Notification is the tuple handed to the presentation layer.
type Notification struct {
	Severity    Severity
	Title       string
	Description string
}

// Notifier displays transient messages. Implementations must not block on
// user interaction.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

// Notify delegates to the underlying function.
func (fn NotifierFunc) Notify(ctx context.Context, n Notification) {
	fn(ctx, n)
}

// Discard drops every notification.
var Discard Notifier = NotifierFunc(func(context.Context, Notification) {})

// Recorder keeps every notification it receives, in order.
type Recorder struct {
	mu   sync.Mutex
	sent []Notification
}

var _ Notifier = (*Recorder)(nil)

// Notify records n.
func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *Recorder) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sent) == 0 {
		return nil
	}
	out := make([]Notification, len(r.sent))
	copy(out, r.sent)
	return out
}

// Reset forgets recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

// Multi fans a notification out to several notifiers in order.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		for _, target := range notifiers {
			if target != nil {
				target.Notify(ctx, n)
			}
		}
	})
}
