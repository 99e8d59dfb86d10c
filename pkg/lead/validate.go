package lead

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-leadform/pkg/locale"
)

// ValidationErrors maps a field name to a human-readable message.
type ValidationErrors map[string]string

// Error joins the messages in field order so ValidationErrors can travel as
// an error value.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "lead: no validation errors"
	}
	parts := make([]string, 0, len(e))
	for _, name := range e.Fields() {
		parts = append(parts, name+": "+e[name])
	}
	return "lead: invalid fields: " + strings.Join(parts, "; ")
}

// Fields returns the offending field names sorted.
func (e ValidationErrors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name failed validation.
func (e ValidationErrors) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// Validator applies the lead rules and renders messages in one language.
type Validator struct {
	rules      *validator.Validate
	translator locale.Translator
	lang       string
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithTranslator overrides the message catalog.
func WithTranslator(t locale.Translator) ValidatorOption {
	return func(v *Validator) {
		if t != nil {
			v.translator = t
		}
	}
}

// WithLanguage selects the message language.
func WithLanguage(lang string) ValidatorOption {
	return func(v *Validator) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			v.lang = trimmed
		}
	}
}

// NewValidator builds a Validator using the embedded catalogs by default.
func NewValidator(opts ...ValidatorOption) *Validator {
	rules := validator.New(validator.WithRequiredStructEnabled())
	rules.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v := &Validator{
		rules: rules,
		lang:  locale.Default,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.translator == nil {
		v.translator = defaultCatalog()
	}
	return v
}

var (
	defaultCatalog   = sync.OnceValue(func() locale.Translator { return locale.MustNew() })
	defaultValidator = sync.OnceValue(func() *Validator { return NewValidator() })
)

// Validate checks fields with the default validator.
func Validate(fields Fields) (Fields, ValidationErrors) {
	return defaultValidator().Validate(fields)
}

// Validate checks every field in one pass. The first violated rule of each
// field produces its message. On success the returned errors are nil and the
// fields are returned unchanged.
func (v *Validator) Validate(fields Fields) (Fields, ValidationErrors) {
	err := v.rules.Struct(fields)
	if err == nil {
		return fields, nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		// Struct only fails with InvalidValidationError for non-struct input.
		panic(fmt.Sprintf("lead: validate: %v", err))
	}

	out := make(ValidationErrors, len(violations))
	for _, violation := range violations {
		name := violation.Field()
		if _, seen := out[name]; seen {
			continue
		}
		out[name] = v.message(name, violation.Tag(), violation.Param())
	}
	return fields, out
}

// Label returns the localized label for a field.
func (v *Validator) Label(name string) string {
	return locale.Text(v.translator, v.lang, "field_"+name, name, nil)
}

func (v *Validator) message(field, rule, param string) string {
	data := map[string]any{
		"Label": v.Label(field),
		"Param": param,
	}
	if msg, ok := locale.Lookup(v.translator, v.lang, "validation_"+field+"_"+rule, data); ok {
		return msg
	}
	switch rule {
	case "required", "min", "max":
		return locale.Text(v.translator, v.lang, "validation_"+rule, rule, data)
	default:
		return locale.Text(v.translator, v.lang, "validation_invalid", rule, data)
	}
}
