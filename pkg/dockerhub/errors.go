package dockerhub

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrInvalidPagination = errors.New("page and page size must be positive")

// NotFoundError is returned when the registry reports that the namespace
// or the repository does not exist.
type NotFoundError struct {
	Namespace  string
	Repository string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("namespace %q or repository %q not found", e.Namespace, e.Repository)
}

// TransportError wraps discovery, network, status and decoding failures.
// StatusCode is zero when no response was received.
type TransportError struct {
	Cause      error
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("registry request failed with status %d: %v", e.StatusCode, e.Cause)
	}

	return fmt.Sprintf("registry request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}
