package server

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindMalformed, "malformed"},
		{KindUnknownOp, "unknown_op"},
		{KindInvalidArgument, "invalid_argument"},
		{KindClosed, "session_closed"},
		{KindInternal, "internal"},
		{ErrorKind(99), "ErrorKind(99)"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
		if tt.kind != ErrorKind(99) && ParseErrorKind(tt.want) != tt.kind {
			t.Errorf("ParseErrorKind(%q) = %v, want %v", tt.want, ParseErrorKind(tt.want), tt.kind)
		}
	}
	if got := ParseErrorKind("nonsense"); got != KindInternal {
		t.Errorf("ParseErrorKind(nonsense) = %v, want internal", got)
	}
}

func TestProtocolError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := fmt.Errorf("wrapped: %w", &ProtocolError{Kind: KindMalformed, Op: "search", Message: "bad", Err: cause})

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !errors.Is(err, &ProtocolError{Kind: KindMalformed}) {
		t.Error("errors.Is matching by kind failed")
	}
	if errors.Is(err, &ProtocolError{Kind: KindUnknownOp}) {
		t.Error("errors.Is matched a different kind")
	}

	var perr *ProtocolError
	if !errors.As(err, &perr) || perr.Op != "search" {
		t.Errorf("errors.As() = %v", perr)
	}

	want := `malformed (op "search"): bad (caused by: unexpected EOF)`
	if perr.Error() != want {
		t.Errorf("Error() = %q, want %q", perr.Error(), want)
	}
}

func TestResponseErr(t *testing.T) {
	ok := &Response{Op: OpView}
	if ok.Err() != nil {
		t.Errorf("Err() = %v, want nil", ok.Err())
	}

	bad := &Response{Op: "explode", Error: &WireError{Kind: "unknown_op", Message: "unknown op"}}
	var perr *ProtocolError
	if !errors.As(bad.Err(), &perr) || perr.Kind != KindUnknownOp {
		t.Errorf("Err() = %v, want unknown_op ProtocolError", bad.Err())
	}
}
