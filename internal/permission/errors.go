package permission

import "fmt"

// PermissionError is the only error kind originating in this package.
// It carries the permission string that would have authorized the
// request so callers can render a 403 with diagnostic detail. It is
// never retried automatically.
type PermissionError struct {
	Required string
	Scope    string
	Context  map[string]any
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("missing permission %q on %s", e.Required, e.Scope)
}

func newPermissionError(required, scope string, ctx map[string]any) *PermissionError {
	return &PermissionError{Required: required, Scope: scope, Context: ctx}
}

// IsPermissionError unwraps err into a *PermissionError when possible.
func IsPermissionError(err error) (*PermissionError, bool) {
	perr, ok := err.(*PermissionError)
	return perr, ok
}
