package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(RootNotFound, "root missing", nil)

	msg := err.Error()
	if !strings.Contains(msg, "ROOT_NOT_FOUND") || !strings.Contains(msg, "root missing") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestErrorWithCause(t *testing.T) {
	cause := stderrors.New("no such file")
	err := New(ScanError, "stat failed", cause)

	if !strings.Contains(err.Error(), "no such file") {
		t.Errorf("Error() = %q, expected cause text", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ParseError, "grammar failure", nil).
		WithDetails(map[string]interface{}{"path": "a.py"})

	details, ok := err.Details.(map[string]interface{})
	if !ok || details["path"] != "a.py" {
		t.Errorf("details = %+v", err.Details)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(CacheError, "x", nil)); got != CacheError {
		t.Errorf("CodeOf = %s", got)
	}
	if got := CodeOf(stderrors.New("plain")); got != InternalError {
		t.Errorf("CodeOf(plain) = %s, expected %s", got, InternalError)
	}
}
