package server

import "fmt"

// ErrorKind is the category of a protocol error.
type ErrorKind int

const (
	// KindMalformed means the frame was not a JSON request
	KindMalformed ErrorKind = iota
	// KindUnknownOp means the op field named no known operation
	KindUnknownOp
	// KindInvalidArgument means a required field was missing or empty
	KindInvalidArgument
	// KindClosed means the session is already closed
	KindClosed
	// KindInternal is anything else
	KindInternal
)

var kindNames = map[ErrorKind]string{
	KindMalformed:       "malformed",
	KindUnknownOp:       "unknown_op",
	KindInvalidArgument: "invalid_argument",
	KindClosed:          "session_closed",
	KindInternal:        "internal",
}

// String returns the wire name of the kind
func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseErrorKind maps a wire name back to its kind. Unknown names map to
// KindInternal.
func ParseErrorKind(name string) ErrorKind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindInternal
}

// ProtocolError is returned for a request the server could not apply. It is
// reported in the response and never closes the connection.
type ProtocolError struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error // Underlying error (if any)
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	prefix := e.Kind.String()
	if e.Op != "" {
		prefix = fmt.Sprintf("%s (op %q)", prefix, e.Op)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// Is matches another *ProtocolError of the same kind, so callers can write
// errors.Is(err, &ProtocolError{Kind: KindUnknownOp}).
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	return ok && t.Kind == e.Kind
}

func newProtocolError(kind ErrorKind, op, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}
