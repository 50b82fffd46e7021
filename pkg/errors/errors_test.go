package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRtMissing, "transition %q has no rt", "goB")

	if err.Code != ErrCodeRtMissing {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRtMissing)
	}

	if err.Message != `transition "goB" has no rt` {
		t.Errorf("Message = %v, want %v", err.Message, `transition "goB" has no rt`)
	}

	expected := `RT_MISSING: transition "goB" has no rt`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := Wrap(ErrCodeFileNotReadable, cause, "read other.json")

	if err.Code != ErrCodeFileNotReadable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotReadable)
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
			err:      New(ErrCodeInvalidDescriptor, "test"),
			code:     ErrCodeInvalidDescriptor,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidDescriptor, "test"),
			code:     ErrCodeRtMissing,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeMalformedInput, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeMalformedInput,
			expected: true,
		},
		{
			name:     "wrapped by fmt.Errorf",
			err:      fmtWrap(New(ErrCodeDescriptorNotFound, "missing")),
			code:     ErrCodeDescriptorNotFound,
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
		{"Error type", New(ErrCodeDescriptorIsNotArray, "test"), ErrCodeDescriptorIsNotArray},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"Error with cause", Wrap(ErrCodeFileNotReadable, errors.New("denied"), "read a.json"), "read a.json: denied"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassification(t *testing.T) {
	if !IsNotFound(New(ErrCodeDescriptorNotFound, "x")) {
		t.Error("DESCRIPTOR_NOT_FOUND should be a not-found error")
	}
	if !IsNotFound(New(ErrCodeFileNotReadable, "x")) {
		t.Error("FILE_NOT_READABLE should be a not-found error")
	}
	if IsNotFound(New(ErrCodeRtMissing, "x")) {
		t.Error("RT_MISSING should not be a not-found error")
	}
	if !IsInvalidProfile(New(ErrCodeRtMissing, "x")) {
		t.Error("RT_MISSING should be an invalid-profile error")
	}
	if IsInvalidProfile(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be an invalid-profile error")
	}
}

func fmtWrap(err error) error {
	return &wrapped{err}
}

type wrapped struct{ err error }

func (w *wrapped) Error() string { return "context: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }
