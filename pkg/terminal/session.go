package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/contactform"
	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/locale"
)

// Session walks a user through one enquiry: field prompts, image staging,
// confirmation, and submission. After a validation failure only the
// offending fields are asked again.
type Session struct {
	form       *contactform.Controller
	driver     PromptDriver
	translator locale.Translator
	lang       string
	theme      Theme
	open       Opener
}

// NewSession binds a session to a controller.
func NewSession(form *contactform.Controller, opts ...Option) (*Session, error) {
	if form == nil {
		return nil, fmt.Errorf("terminal: controller is nil")
	}
	s := &Session{
		form:  form,
		lang:  locale.Default,
		theme: DefaultTheme,
		open:  attachment.FromPath,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		return nil, ErrNoDriver
	}
	if s.translator == nil {
		catalog, err := locale.New()
		if err != nil {
			return nil, err
		}
		s.translator = catalog
	}
	return s, nil
}

// Run drives the session until the lead is accepted or the user gives up.
// Declining the confirmation returns ErrAborted along with the last outcome.
func (s *Session) Run(ctx context.Context) (contactform.Outcome, error) {
	if err := s.promptFields(ctx, lead.FieldNames); err != nil {
		return contactform.Outcome{}, err
	}
	if err := s.promptAttachments(ctx); err != nil {
		return contactform.Outcome{}, err
	}

	var last contactform.Outcome
	for {
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: s.text("prompt_confirm_submit", "Send?", nil),
			Default: true,
		})
		if err != nil {
			return last, err
		}
		if !ok {
			return last, ErrAborted
		}

		last = s.form.Submit(ctx)
		switch last.Result {
		case contactform.ResultValidationFailed:
			if err := s.promptFields(ctx, offending(last.Errors)); err != nil {
				return last, err
			}
		case contactform.ResultFailed, contactform.ResultIgnored:
			// values are kept; the next confirmation retries
		default:
			return last, nil
		}
	}
}

func (s *Session) promptFields(ctx context.Context, names []string) error {
	for _, name := range names {
		if err := s.promptField(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, name string) error {
	label := s.form.Label(name)
	current, err := s.form.Fields().Get(name)
	if err != nil {
		return err
	}
	if msg := s.form.FieldError(name); msg != "" {
		if err := s.driver.Info(ctx, s.theme.ErrorPrefix+label+": "+msg); err != nil {
			return err
		}
	}

	var value string
	switch name {
	case lead.FieldFuelType:
		value, err = s.choose(ctx, label, lead.FuelTypes, current)
	case lead.FieldTransmission:
		value, err = s.choose(ctx, label, lead.Transmissions, current)
	case lead.FieldNotes:
		value, err = s.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current})
	default:
		value, err = s.driver.Input(ctx, InputConfig{Message: label, Default: current})
	}
	if err != nil {
		return err
	}
	return s.form.SetField(name, value)
}

// choose offers a skip entry first; picking it leaves the field empty.
func (s *Session) choose(ctx context.Context, label string, options []string, current string) (string, error) {
	entries := append([]string{s.text("prompt_skip", "(skip)", nil)}, options...)
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      entries,
		DefaultIndex: indexOf(entries, current),
	})
	if err != nil {
		return "", err
	}
	if idx <= 0 || idx >= len(entries) {
		return "", nil
	}
	return entries[idx], nil
}

func (s *Session) promptAttachments(ctx context.Context) error {
	for {
		raw, err := s.driver.Input(ctx, InputConfig{Message: s.text("prompt_attachments", "Image paths", nil)})
		if err != nil {
			return err
		}
		paths := splitPaths(raw)
		if len(paths) == 0 {
			break
		}
		files := make([]attachment.File, 0, len(paths))
		for _, path := range paths {
			file, err := s.open(path)
			if err != nil {
				if err := s.driver.Info(ctx, s.theme.ErrorPrefix+err.Error()); err != nil {
					return err
				}
				continue
			}
			files = append(files, file)
		}
		staged := s.form.AddAttachments(ctx, files...)
		if err := s.showStaged(ctx, staged); err != nil {
			return err
		}
	}
	return s.promptRemovals(ctx)
}

func (s *Session) promptRemovals(ctx context.Context) error {
	for {
		staged := s.form.Attachments()
		if len(staged) == 0 {
			return nil
		}
		remove, err := s.driver.Confirm(ctx, ConfirmConfig{Message: s.text("prompt_remove_attachment", "Remove an image?", nil)})
		if err != nil {
			return err
		}
		if !remove {
			return nil
		}
		names := make([]string, len(staged))
		for i, item := range staged {
			names[i] = item.File.Name
		}
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: s.text("prompt_remove_which", "Which image?", nil),
			Options: names,
		})
		if err != nil {
			return err
		}
		if err := s.showStaged(ctx, s.form.RemoveAttachment(idx)); err != nil {
			return err
		}
	}
}

func (s *Session) showStaged(ctx context.Context, staged []attachment.Staged) error {
	lines := []string{s.theme.InfoPrefix + s.text("prompt_staged", fmt.Sprintf("%d", len(staged)), map[string]any{"Count": len(staged)})}
	for _, item := range staged {
		lines = append(lines, "  "+item.File.Name)
	}
	return s.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (s *Session) text(key, fallback string, data map[string]any) string {
	return locale.Text(s.translator, s.lang, key, fallback, data)
}

// offending keeps form order so re-prompts read like the first pass.
func offending(errs lead.ValidationErrors) []string {
	var out []string
	for _, name := range lead.FieldNames {
		if errs.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

func splitPaths(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
