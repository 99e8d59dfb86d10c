package contactform

import (
	"log/slog"
	"strings"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/locale"
	"github.com/goliatone/go-leadform/pkg/visibility"
)

// Option configures a Controller.
type Option func(*Controller)

// WithTranslator overrides the message catalog used for notifications,
// validation messages, and the submit label.
func WithTranslator(t locale.Translator) Option {
	return func(c *Controller) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithLanguage selects the message language.
func WithLanguage(lang string) Option {
	return func(c *Controller) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			c.lang = trimmed
		}
	}
}

// WithVisibility injects the viewport observer.
func WithVisibility(o visibility.Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.visibility = o
		}
	}
}

// WithAttachments replaces the staged file set, for example to change the
// size cap or the preview registry.
func WithAttachments(set *attachment.Set) Option {
	return func(c *Controller) {
		if set != nil {
			c.attachments = set
		}
	}
}

// WithAttachmentUpload controls whether staged files are sent as binaries.
// It is off by default; staged files then stay local previews only.
func WithAttachmentUpload(enabled bool) Option {
	return func(c *Controller) {
		c.uploadAttachments = enabled
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInitialFields pre-fills the form.
func WithInitialFields(fields lead.Fields) Option {
	return func(c *Controller) {
		c.fields = fields
	}
}
