package profile

import "fmt"

// ValidationError reports missing or malformed caller input. Nothing is
// mutated; the caller can re-submit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BackendError reports a failed remote call. Local state is unchanged and
// the operation may be retried.
type BackendError struct {
	Op  string
	Err error
}

func (e BackendError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e BackendError) Unwrap() error { return e.Err }

// NotFoundError reports an operation against an absent account or profile.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ErrInvalidCredentials is returned on login with a wrong email or password.
// The message is deliberately identical for both cases.
var ErrInvalidCredentials = BackendError{Op: "authentication", Err: fmt.Errorf("invalid email or password")}
