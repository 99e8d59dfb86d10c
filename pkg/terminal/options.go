package terminal

import (
	"strings"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/locale"
)

// Theme captures optional message prefixes the session and notifier apply
// when printing. Keep minimal to avoid coupling to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme marks errors and plain messages with short prefixes.
var DefaultTheme = Theme{
	InfoPrefix:  "› ",
	ErrorPrefix: "✗ ",
}

// Opener turns a path typed by the user into a stageable file.
type Opener func(path string) (attachment.File, error)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTranslator overrides the catalog used for prompt texts.
func WithTranslator(t locale.Translator) Option {
	return func(s *Session) {
		if t != nil {
			s.translator = t
		}
	}
}

// WithLanguage selects the prompt language.
func WithLanguage(lang string) Option {
	return func(s *Session) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			s.lang = trimmed
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithOpener replaces attachment.FromPath when resolving typed paths.
func WithOpener(open Opener) Option {
	return func(s *Session) {
		if open != nil {
			s.open = open
		}
	}
}
