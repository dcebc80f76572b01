package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestSyntax(t *testing.T) {
	err := Syntax(ErrCodeMalformedLine, 3, "missing arrow")

	if err.Line != 3 {
		t.Errorf("Line = %d, want 3", err.Line)
	}

	expected := "line 3: SYNTAX_MALFORMED_LINE: missing arrow"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidConfig, cause, "failed to load")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "INVALID_CONFIG: failed to load: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeNoParticipants, "test"),
			code:     ErrCodeNoParticipants,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeNoParticipants, "test"),
			code:     ErrCodeMalformedLine,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      wrapf(Syntax(ErrCodeEmptyParticipant, 1, "empty")),
			code:     ErrCodeEmptyParticipant,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDegenerateSpan, "test"),
			expected: ErrCodeDegenerateSpan,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLineOf(t *testing.T) {
	if got := LineOf(wrapf(Syntax(ErrCodeMalformedLine, 7, "x"))); got != 7 {
		t.Errorf("LineOf() = %d, want 7", got)
	}
	if got := LineOf(errors.New("plain")); got != 0 {
		t.Errorf("LineOf(plain) = %d, want 0", got)
	}
}

func TestCategories(t *testing.T) {
	syntax := Syntax(ErrCodeMalformedLine, 1, "x")
	model := New(ErrCodeNoParticipants, "x")
	layout := New(ErrCodeDegenerateSpan, "x")

	if !IsSyntax(syntax) || IsModel(syntax) || IsLayout(syntax) {
		t.Error("syntax error categorized incorrectly")
	}
	if IsSyntax(model) || !IsModel(model) || IsLayout(model) {
		t.Error("model error categorized incorrectly")
	}
	if IsSyntax(layout) || IsModel(layout) || !IsLayout(layout) {
		t.Error("layout error categorized incorrectly")
	}
	if IsSyntax(errors.New("plain")) {
		t.Error("plain error should not be a syntax error")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "with line",
			err:      Syntax(ErrCodeMalformedLine, 2, "missing colon"),
			expected: "line 2: missing colon",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

type wrapped struct{ err error }

func (w wrapped) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapped) Unwrap() error { return w.err }

func wrapf(err error) error { return wrapped{err} }
