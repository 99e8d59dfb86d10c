package terminal

import (
	"context"

	"github.com/goliatone/go-leadform/pkg/notify"
)

// Notifier prints notifications through a prompt driver.
type Notifier struct {
	driver PromptDriver
	theme  Theme
}

var _ notify.Notifier = (*Notifier)(nil)

// NewNotifier wraps driver. A zero theme falls back to DefaultTheme.
func NewNotifier(driver PromptDriver, theme Theme) *Notifier {
	if theme == (Theme{}) {
		theme = DefaultTheme
	}
	return &Notifier{driver: driver, theme: theme}
}

// Notify prints the title and, when present, the description on the next
// line. Print failures are dropped since notifications are best effort.
func (n *Notifier) Notify(ctx context.Context, msg notify.Notification) {
	if n == nil || n.driver == nil {
		return
	}
	prefix := n.theme.InfoPrefix
	if msg.Severity == notify.SeverityDestructive {
		prefix = n.theme.ErrorPrefix
	}
	text := prefix + msg.Title
	if msg.Description != "" {
		text += "\n  " + msg.Description
	}
	_ = n.driver.Info(context.WithoutCancel(ctx), text)
}
