package contactform

import "github.com/goliatone/go-leadform/pkg/lead"

// Phase is the position of the current submission in its lifecycle.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseValidating       Phase = "validating"
	PhaseValidationFailed Phase = "validation_failed"
	PhaseValidated        Phase = "validated"
	PhaseSubmitting       Phase = "submitting"
	PhaseSucceeded        Phase = "succeeded"
	PhaseFailed           Phase = "failed"
)

// Busy reports whether a submission occupies the form.
func (p Phase) Busy() bool {
	switch p {
	case PhaseValidating, PhaseValidated, PhaseSubmitting:
		return true
	default:
		return false
	}
}

// Terminal reports whether p ends a submission; the form returns to Idle
// right after.
func (p Phase) Terminal() bool {
	switch p {
	case PhaseValidationFailed, PhaseSucceeded, PhaseFailed:
		return true
	default:
		return false
	}
}

var transitions = map[Phase][]Phase{
	PhaseIdle:             {PhaseValidating},
	PhaseValidating:       {PhaseValidationFailed, PhaseValidated},
	PhaseValidated:        {PhaseSubmitting},
	PhaseSubmitting:       {PhaseSucceeded, PhaseFailed},
	PhaseValidationFailed: {PhaseIdle},
	PhaseSucceeded:        {PhaseIdle},
	PhaseFailed:           {PhaseIdle},
}

// CanTransition reports whether the lifecycle allows moving from one phase
// to another.
func CanTransition(from, to Phase) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Result names how a Submit call ended.
type Result string

const (
	// ResultSucceeded means the relay accepted the lead.
	ResultSucceeded Result = "succeeded"
	// ResultValidationFailed means nothing was sent.
	ResultValidationFailed Result = "validation_failed"
	// ResultFailed means the relay refused the lead or was unreachable.
	ResultFailed Result = "failed"
	// ResultIgnored means another submission was already in flight.
	ResultIgnored Result = "ignored"
)

// Outcome is what Submit returns. Err carries the underlying cause for logs
// and callers; it is never shown to the end user.
type Outcome struct {
	Result Result
	Errors lead.ValidationErrors
	Err    error
}

// Success reports whether the lead was accepted.
func (o Outcome) Success() bool {
	return o.Result == ResultSucceeded
}
