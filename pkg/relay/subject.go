package relay

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// DefaultSubject is the subject template used when none is configured.
const DefaultSubject = "Otkup vozila: {{ car_make_model }} ({{ year }})"

type subjectTemplate struct {
	raw  string
	tmpl *pongo2.Template
}

func parseSubject(raw string) (*subjectTemplate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultSubject
	}
	// Subjects are plain text; escaping would leak entities into the inbox.
	tmpl, err := pongo2.FromString("{% autoescape off %}" + raw + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("relay: parse subject template: %w", err)
	}
	return &subjectTemplate{raw: raw, tmpl: tmpl}, nil
}

func (s *subjectTemplate) render(values map[string]string) (string, error) {
	ctx := make(pongo2.Context, len(values))
	for key, value := range values {
		ctx[key] = value
	}
	out, err := s.tmpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("relay: render subject: %w", err)
	}
	return strings.Join(strings.Fields(out), " "), nil
}
