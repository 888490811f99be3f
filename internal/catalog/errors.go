package catalog

import "fmt"

// ValidationError reports a catalog that could not be used.
type ValidationError struct {
	Source  string // File path, or "<memory>" / "<default>"
	Index   int    // Offending item index, -1 when the whole document is bad
	Message string
	Err     error // Underlying parse error (if any)
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	where := e.Source
	if e.Index >= 0 {
		where = fmt.Sprintf("%s: item %d", e.Source, e.Index)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid catalog %s: %s (caused by: %v)", where, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid catalog %s: %s", where, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ValidationError) Unwrap() error {
	return e.Err
}
