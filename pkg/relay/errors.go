package relay

import (
	"errors"
	"fmt"
)

// ErrSubmissionFailed matches every failed submission, whether the provider
// refused it or the request never completed.
var ErrSubmissionFailed = errors.New("relay: submission failed")

// ProviderError is a response the provider sent back that does not count as
// success.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay: provider responded %d", e.StatusCode)
	}
	return fmt.Sprintf("relay: provider responded %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrSubmissionFailed) match.
func (e *ProviderError) Is(target error) bool {
	return target == ErrSubmissionFailed
}
