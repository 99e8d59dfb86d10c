package locale

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Default is the language used when callers do not pick one.
const Default = "hr"

//go:embed catalogs/*.toml
var catalogFS embed.FS

// ErrMissingTranslator is reported when a lookup happens without a
// translator configured.
var ErrMissingTranslator = errors.New("locale: translator not configured")

// Translator resolves message keys for a locale. Optional args may carry a
// map[string]any used as template data.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// Catalog is a Translator backed by the embedded go-i18n message files.
type Catalog struct {
	bundle *i18n.Bundle

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

var _ Translator = (*Catalog)(nil)

// New loads the embedded catalogs. Croatian is the bundle default, so keys
// missing from another language fall back to it.
func New() (*Catalog, error) {
	bundle := i18n.NewBundle(language.Croatian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(catalogFS, "catalogs/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("locale: list catalogs: %w", err)
	}
	for _, file := range files {
		data, err := catalogFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("locale: read %s: %w", file, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(file)); err != nil {
			return nil, fmt.Errorf("locale: parse %s: %w", file, err)
		}
	}

	return &Catalog{
		bundle:     bundle,
		localizers: make(map[string]*i18n.Localizer),
	}, nil
}

// MustNew is New for package-level defaults; the catalogs are embedded so a
// failure is a build defect.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Languages lists the loaded catalog languages.
func (c *Catalog) Languages() []string {
	if c == nil || c.bundle == nil {
		return nil
	}
	tags := c.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Supports reports whether lang has its own catalog.
func (c *Catalog) Supports(lang string) bool {
	for _, candidate := range c.Languages() {
		if strings.EqualFold(candidate, strings.TrimSpace(lang)) {
			return true
		}
	}
	return false
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	if c == nil || c.bundle == nil {
		return "", ErrMissingTranslator
	}
	cfg := &i18n.LocalizeConfig{MessageID: key}
	if data := templateData(args); data != nil {
		cfg.TemplateData = data
	}
	return c.localizer(locale).Localize(cfg)
}

func (c *Catalog) localizer(locale string) *i18n.Localizer {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = Default
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.localizers[locale]; ok {
		return l
	}
	l := i18n.NewLocalizer(c.bundle, locale)
	c.localizers[locale] = l
	return l
}

func templateData(args []any) map[string]any {
	for _, arg := range args {
		if data, ok := arg.(map[string]any); ok {
			return data
		}
	}
	return nil
}

// Text resolves key, returning fallback (or the key itself) when the
// translator is nil or has no message.
func Text(t Translator, locale, key, fallback string, data map[string]any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t != nil {
		var (
			msg string
			err error
		)
		if data != nil {
			msg, err = t.Translate(locale, key, data)
		} else {
			msg, err = t.Translate(locale, key)
		}
		if err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// Lookup is Text without a fallback; ok is false when no message exists.
func Lookup(t Translator, locale, key string, data map[string]any) (string, bool) {
	if t == nil {
		return "", false
	}
	msg, err := t.Translate(locale, key, data)
	if err != nil || strings.TrimSpace(msg) == "" {
		return "", false
	}
	return msg, true
}
