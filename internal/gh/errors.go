package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
)

// ErrNotFound indicates the repo, branch, tag or file does not exist
// upstream. Not retryable.
var ErrNotFound = errors.New("not found on GitHub")

// NetworkError wraps transient failures talking to the GitHub API. Callers
// may retry; the reconciliation engine surfaces it as a per-addon error.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// classify maps a go-github error to the package's error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, op)
	}

	// Everything else (DNS, TLS, rate limiting, cancelled contexts) is
	// treated as transient.
	return &NetworkError{Op: op, Err: err}
}

// IsRetryable reports whether the error is worth retrying on a later pass.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
