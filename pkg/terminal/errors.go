package terminal

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// send the enquiry.
	ErrAborted = errors.New("terminal: aborted")
	// ErrNoDriver is returned when a session is built without a prompt driver.
	ErrNoDriver = errors.New("terminal: prompt driver is nil")
)
