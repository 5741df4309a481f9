package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDimensions, "bad size: %dx%d", 0, 32)

	if err.Code != ErrCodeInvalidDimensions {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDimensions)
	}

	if err.Message != "bad size: 0x32" {
		t.Errorf("Message = %v, want %v", err.Message, "bad size: 0x32")
	}

	expected := "INVALID_DIMENSIONS: bad size: 0x32"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, cause, "decode raster")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
			err:      New(ErrCodeOutOfRange, "test"),
			code:     ErrCodeOutOfRange,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeOutOfRange, "test"),
			code:     ErrCodeMissingInput,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSourceNotFound, New(ErrCodeInternal, "inner"), "outer"),
			code:     ErrCodeSourceNotFound,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
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
	if got := GetCode(New(ErrCodeDimensionMismatch, "x")); got != ErrCodeDimensionMismatch {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeDimensionMismatch)
	}

	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeGeneratorNotFound, "no generator for kind %q", "spiral")
	if got := UserMessage(err); got != `no generator for kind "spiral"` {
		t.Errorf("UserMessage() = %v", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}

func TestValidateSymbolKind(t *testing.T) {
	valid := []string{"notehead", "half-rest", "clef", "flag8", "bar-line-thick"}
	for _, kind := range valid {
		if err := ValidateSymbolKind(kind); err != nil {
			t.Errorf("ValidateSymbolKind(%q) = %v, want nil", kind, err)
		}
	}

	invalid := []string{"", "Notehead", "note head", "note..head", "-rest", "rest-", "a/b"}
	for _, kind := range invalid {
		if err := ValidateSymbolKind(kind); err == nil {
			t.Errorf("ValidateSymbolKind(%q) = nil, want error", kind)
		}
	}
}

func TestValidateAssetName(t *testing.T) {
	if err := ValidateAssetName("notehead.png"); err != nil {
		t.Errorf("ValidateAssetName(notehead.png) = %v, want nil", err)
	}

	invalid := []string{"", "../x.png", "a/b.png", ".hidden.png", "a\\b.png"}
	for _, name := range invalid {
		if err := ValidateAssetName(name); err == nil {
			t.Errorf("ValidateAssetName(%q) = nil, want error", name)
		}
	}
}
