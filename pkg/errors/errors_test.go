package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "basic error without underlying",
			err:      &Error{Code: ExitCodeGeneral, Message: "test error"},
			expected: "test error",
		},
		{
			name:     "error with underlying",
			err:      &Error{Code: ExitCodeGeneral, Message: "bridge error", Underlying: errors.New("adb not found")},
			expected: "bridge error: adb not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:       ExitCodeGeneral,
		Message:    "test error",
		Underlying: underlying,
	}

	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), underlying)
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if got := Wrap(nil, "context"); got != nil {
			t.Errorf("Wrap(nil) = %v, want nil", got)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		inner := errors.New("boom")
		got := Wrap(inner, "while probing")
		if got.Code != ExitCodeGeneral {
			t.Errorf("Code = %d, want %d", got.Code, ExitCodeGeneral)
		}
		if got.Message != "while probing" {
			t.Errorf("Message = %q, want %q", got.Message, "while probing")
		}
		if got.Underlying != inner {
			t.Errorf("Underlying = %v, want %v", got.Underlying, inner)
		}
	})

	t.Run("typed error preserves code", func(t *testing.T) {
		inner := New(ExitCodeInterrupt, "cancelled")
		got := Wrap(inner, "while setting clipboard")
		if got.Code != ExitCodeInterrupt {
			t.Errorf("Code = %d, want %d", got.Code, ExitCodeInterrupt)
		}
		if got.Message != "while setting clipboard: cancelled" {
			t.Errorf("Message = %q", got.Message)
		}
	})
}

func TestSilent(t *testing.T) {
	err := Silent(ExitCodeGeneral)
	if err.Message != "" {
		t.Errorf("Silent message = %q, want empty", err.Message)
	}
	if got := HandleReturn(err); got != ExitCodeGeneral {
		t.Errorf("HandleReturn(Silent) = %d, want %d", got, ExitCodeGeneral)
	}
}

func TestIsExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ExitCode
		want bool
	}{
		{"nil error", nil, ExitCodeGeneral, false},
		{"matching code", New(ExitCodeInterrupt, "stop"), ExitCodeInterrupt, true},
		{"different code", New(ExitCodeGeneral, "nope"), ExitCodeInterrupt, false},
		{"plain error", errors.New("plain"), ExitCodeGeneral, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsExitCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsExitCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleReturn_NilError(t *testing.T) {
	if got := HandleReturn(nil); got != ExitCodeSuccess {
		t.Errorf("HandleReturn(nil) = %d, want %d", got, ExitCodeSuccess)
	}
}
