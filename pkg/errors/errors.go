package errors

import (
	"fmt"
	"os"
	"strings"

	"droidclip/pkg/logger"

	"github.com/fatih/color"
)

type ExitCode int

const (
	ExitCodeSuccess   ExitCode = 0
	ExitCodeGeneral   ExitCode = 1
	ExitCodeInterrupt ExitCode = 130
)

// Standardized error messages for consistent user-facing errors
const (
	ErrMsgBridgeNotFound = "Device bridge (adb) not found"
)

type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

func New(code ExitCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

func NewWithError(code ExitCode, message string, err error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
	}
}

func NewWithSuggestion(code ExitCode, message string, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Silent returns an error that carries only an exit code. HandleReturn
// prints nothing for it; use it when the command already wrote its own
// diagnostics (the self-test report, the empty-clipboard notice).
func Silent(code ExitCode) *Error {
	return &Error{Code: code}
}

func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	if wrapped, ok := err.(*Error); ok {
		return &Error{
			Code:       wrapped.Code,
			Message:    message + ": " + wrapped.Message,
			Underlying: wrapped.Underlying,
			Suggestion: wrapped.Suggestion,
		}
	}

	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Underlying: err,
	}
}

func IsExitCode(err error, code ExitCode) bool {
	if err == nil {
		return false
	}

	if e, ok := err.(*Error); ok {
		return e.Code == code
	}

	return false
}

// HandleReturn processes an error and returns the appropriate exit code.
// It does not call os.Exit - the caller is responsible for exiting the
// program.
func HandleReturn(err error) ExitCode {
	if err == nil {
		return ExitCodeSuccess
	}

	var exitCode ExitCode = ExitCodeGeneral
	var message string
	var suggestion string

	if e, ok := err.(*Error); ok {
		exitCode = e.Code
		message = e.Message
		suggestion = e.Suggestion

		if message == "" {
			return exitCode
		}

		if e.Underlying != nil {
			logger.Error().Err(e.Underlying).Msg(e.Message)
		}
	} else {
		message = err.Error()
	}

	red := color.New(color.FgRed, color.Bold)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(os.Stderr)
	red.Fprint(os.Stderr, "Error: ")
	fmt.Fprintln(os.Stderr, message)

	if suggestion != "" {
		yellow.Fprint(os.Stderr, "Suggestion: ")
		lines := strings.Split(suggestion, "\n")
		for i, line := range lines {
			if i == 0 {
				fmt.Fprintln(os.Stderr, line)
			} else {
				fmt.Fprintln(os.Stderr, "           "+line)
			}
		}
	}

	fmt.Fprintln(os.Stderr)

	return exitCode
}

func ValidationError(message string) *Error {
	return &Error{
		Code:    ExitCodeGeneral,
		Message: message,
	}
}

func BridgeNotFoundError() *Error {
	return &Error{
		Code:       ExitCodeGeneral,
		Message:    ErrMsgBridgeNotFound,
		Suggestion: "Install Android platform-tools and make sure adb is on PATH, or set bridge.path in the config file.",
	}
}

func ConfigError(message string) *Error {
	return &Error{
		Code:       ExitCodeGeneral,
		Message:    message,
		Suggestion: "Check your configuration file or run 'droidclip config init'.",
	}
}
