package contactform

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-leadform/pkg/attachment"
	"github.com/goliatone/go-leadform/pkg/lead"
	"github.com/goliatone/go-leadform/pkg/locale"
	"github.com/goliatone/go-leadform/pkg/notify"
	"github.com/goliatone/go-leadform/pkg/relay"
	"github.com/goliatone/go-leadform/pkg/visibility"
)

// Submitter delivers a validated lead. *relay.Client satisfies it.
type Submitter interface {
	Submit(ctx context.Context, sub relay.Submission) error
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, sub relay.Submission) error

// Submit delegates to the underlying function.
func (fn SubmitterFunc) Submit(ctx context.Context, sub relay.Submission) error {
	return fn(ctx, sub)
}

var _ Submitter = (*relay.Client)(nil)

// Controller owns the state of one contact form instance: field values,
// validation errors, staged attachments, and the in-flight flag. All
// mutation goes through its methods.
type Controller struct {
	submitter         Submitter
	notifier          notify.Notifier
	translator        locale.Translator
	lang              string
	visibility        visibility.Observer
	validator         *lead.Validator
	logger            *slog.Logger
	uploadAttachments bool

	mu          sync.Mutex
	fields      lead.Fields
	errors      lead.ValidationErrors
	attachments *attachment.Set
	phase       Phase
	closed      bool

	inFlight atomic.Bool
}

// New builds a Controller. The submitter and notifier are required
// collaborators.
func New(submitter Submitter, notifier notify.Notifier, opts ...Option) (*Controller, error) {
	if submitter == nil {
		return nil, errors.New("contactform: submitter is required")
	}
	if notifier == nil {
		return nil, errors.New("contactform: notifier is required")
	}

	c := &Controller{
		submitter:  submitter,
		notifier:   notifier,
		lang:       locale.Default,
		visibility: visibility.Always,
		logger:     slog.Default(),
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.translator == nil {
		catalog, err := locale.New()
		if err != nil {
			return nil, err
		}
		c.translator = catalog
	}
	if c.attachments == nil {
		c.attachments = attachment.NewSet()
	}
	c.validator = lead.NewValidator(lead.WithTranslator(c.translator), lead.WithLanguage(c.lang))
	return c, nil
}

// SetField updates one field value.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields.Set(name, value)
}

// SetFields replaces every field value.
func (c *Controller) SetFields(fields lead.Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fields = fields
}

// Fields returns the current values.
func (c *Controller) Fields() lead.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Errors returns a copy of the field errors from the last submit attempt.
func (c *Controller) Errors() lead.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errors)
}

// FieldError returns the message for one field, empty when it passed.
func (c *Controller) FieldError(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[name]
}

// Validate checks the current values, sanitized the way Submit sends them,
// without touching the stored errors.
func (c *Controller) Validate() lead.ValidationErrors {
	_, errs := c.validator.Validate(lead.Sanitize(c.Fields()))
	return errs
}

// Label returns the localized label for a field.
func (c *Controller) Label(name string) string {
	return c.validator.Label(name)
}

// AddAttachments stages files and emits one destructive notification per
// rejected file. It returns the staged set after the change. After Close it
// stages nothing.
func (c *Controller) AddAttachments(ctx context.Context, files ...attachment.File) []attachment.Staged {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("attachments ignored, form closed", slog.Int("files", len(files)))
		return nil
	}
	_, rejected := c.attachments.Add(files...)
	items := c.attachments.Items()
	limit := c.attachments.Limit()
	c.mu.Unlock()

	for _, r := range rejected {
		c.logger.Debug("attachment rejected", slog.String("file", r.File.Name), slog.Int64("size", r.File.Size), slog.Any("error", r.Err))
		c.notifier.Notify(ctx, c.rejection(r, limit))
	}
	return items
}

// RemoveAttachment drops the staged file at index; out of range is a no-op.
// It returns the staged set after the change.
func (c *Controller) RemoveAttachment(index int) []attachment.Staged {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachments.Remove(index)
	return c.attachments.Items()
}

// Attachments returns the staged files in order.
func (c *Controller) Attachments() []attachment.Staged {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attachments.Items()
}

// InFlight reports whether a submission is running.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// SubmitEnabled reports whether the submit control should accept input.
func (c *Controller) SubmitEnabled() bool {
	return !c.InFlight() && !c.Phase().Busy()
}

// SubmitLabel returns the submit control text for the current state.
func (c *Controller) SubmitLabel() string {
	if c.InFlight() {
		return c.text("submit_in_flight", "...", nil)
	}
	return c.text("submit_idle", "Submit", nil)
}

// Phase reports the lifecycle phase of the current submission.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Visible reports the injected viewport signal.
func (c *Controller) Visible() bool {
	return c.visibility.Visible()
}

// Submit sanitizes and validates the current values and, when they pass,
// sends exactly those values through the submitter. A call made while another is in flight is ignored.
// The in-flight flag is cleared on every return path.
func (c *Controller) Submit(ctx context.Context) Outcome {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("submit ignored, already in flight")
		return Outcome{Result: ResultIgnored}
	}
	defer c.inFlight.Store(false)

	c.mu.Lock()
	c.errors = nil
	c.setPhase(PhaseValidating)
	c.fields = lead.Sanitize(c.fields)
	fields, errs := c.validator.Validate(c.fields)
	if len(errs) > 0 {
		c.errors = errs
		c.setPhase(PhaseValidationFailed)
		c.setPhase(PhaseIdle)
		c.mu.Unlock()

		c.notifier.Notify(ctx, notify.Notification{
			Severity:    notify.SeverityDestructive,
			Title:       c.text("notify_validation_title", "Invalid form", nil),
			Description: c.text("notify_validation_description", "", nil),
		})
		return Outcome{Result: ResultValidationFailed, Errors: copyErrors(errs)}
	}

	c.setPhase(PhaseValidated)
	sub := relay.Submission{Fields: fields}
	if c.uploadAttachments {
		sub.Attachments = c.attachments.Files()
	}
	c.setPhase(PhaseSubmitting)
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, sub)

	c.mu.Lock()
	if err != nil {
		c.setPhase(PhaseFailed)
		c.setPhase(PhaseIdle)
		c.mu.Unlock()

		c.logger.Warn("lead submission failed", slog.Any("error", err), slog.Int("attachments", len(sub.Attachments)))
		c.notifier.Notify(ctx, notify.Notification{
			Severity:    notify.SeverityDestructive,
			Title:       c.text("notify_failure_title", "Submission failed", nil),
			Description: c.text("notify_failure_description", "", nil),
		})
		return Outcome{Result: ResultFailed, Err: err}
	}

	c.fields = lead.Fields{}
	c.errors = nil
	c.attachments.Clear()
	c.setPhase(PhaseSucceeded)
	c.setPhase(PhaseIdle)
	c.mu.Unlock()

	c.logger.Info("lead submitted", slog.Int("attachments", len(sub.Attachments)))
	c.notifier.Notify(ctx, notify.Notification{
		Severity:    notify.SeverityNormal,
		Title:       c.text("notify_success_title", "Sent", nil),
		Description: c.text("notify_success_description", "", nil),
	})
	return Outcome{Result: ResultSucceeded}
}

// Close releases every preview handle and stops further staging. Repeated
// calls are safe.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.attachments.Clear()
	return nil
}

// setPhase must be called with mu held.
func (c *Controller) setPhase(next Phase) {
	if !CanTransition(c.phase, next) {
		c.logger.Warn("unexpected phase transition", slog.String("from", string(c.phase)), slog.String("to", string(next)))
	}
	if next.Terminal() {
		c.logger.Debug("submission finished", slog.String("phase", string(next)))
	} else {
		c.logger.Debug("phase", slog.String("from", string(c.phase)), slog.String("to", string(next)))
	}
	c.phase = next
}

func (c *Controller) rejection(r attachment.Rejection, limit int64) notify.Notification {
	data := map[string]any{
		"Name":  r.File.Name,
		"Limit": humanize.IBytes(uint64(limit)),
	}
	if errors.Is(r.Err, attachment.ErrNotImage) {
		return notify.Notification{
			Severity:    notify.SeverityDestructive,
			Title:       c.text("notify_file_not_image_title", "Unsupported file", nil),
			Description: c.text("notify_file_not_image_description", r.File.Name, data),
		}
	}
	return notify.Notification{
		Severity:    notify.SeverityDestructive,
		Title:       c.text("notify_file_too_large_title", "File too large", nil),
		Description: c.text("notify_file_too_large_description", r.File.Name, data),
	}
}

func (c *Controller) text(key, fallback string, data map[string]any) string {
	return locale.Text(c.translator, c.lang, key, fallback, data)
}

func copyErrors(src lead.ValidationErrors) lead.ValidationErrors {
	if len(src) == 0 {
		return nil
	}
	out := make(lead.ValidationErrors, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
