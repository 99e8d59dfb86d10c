package lead

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxSanitizePasses bounds the fixed-point loop in SanitizeText. Each pass
// only removes text, so real input settles in one or two.
const maxSanitizePasses = 8

var textPolicy = sync.OnceValue(bluemonday.StrictPolicy)

// SanitizeText strips markup and decodes entities back to plain text. The
// result is stable: sanitizing it again returns it unchanged.
func SanitizeText(raw string) string {
	value := strings.TrimSpace(raw)
	for i := 0; i < maxSanitizePasses && value != ""; i++ {
		next := strings.TrimSpace(html.UnescapeString(textPolicy().Sanitize(value)))
		if next == value {
			break
		}
		value = next
	}
	return value
}

// Sanitize returns fields with every value passed through SanitizeText.
// Relayed leads end up in an HTML email, so validation runs on the
// sanitized copy.
func Sanitize(fields Fields) Fields {
	out := fields
	for _, name := range FieldNames {
		ptr := out.ref(name)
		*ptr = SanitizeText(*ptr)
	}
	return out
}
