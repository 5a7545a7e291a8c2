package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitInvalid      = 1 // input judged invalid, or runtimes disagree
	ExitCommandError = 2 // unreadable files, bad flags
)

const (
	FormatText = "text"
	FormatJSON = "json"

	statusOK      = "ok"
	statusInvalid = "invalid"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{FormatText, FormatJSON}

// ExitError carries the exit code of a failed command. A result that was
// already written to the output has an empty Message.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func commandError(message string, err error) *ExitError {
	return &ExitError{Code: ExitCommandError, Message: message, Err: err}
}

func invalidResult() *ExitError {
	return &ExitError{Code: ExitInvalid}
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitCommandError
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type outputFormatter struct {
	format string
	writer io.Writer
}

// emit writes data as a JSON response or, in text format, through text.
func (f outputFormatter) emit(valid bool, data any, text func(w io.Writer)) error {
	if f.format == FormatJSON {
		status := statusOK
		if !valid {
			status = statusInvalid
		}

		if err := json.NewEncoder(f.writer).Encode(Response{Status: status, Data: data}); err != nil {
			return commandError("failed to write output", err)
		}
	} else {
		text(f.writer)
	}

	if !valid {
		return invalidResult()
	}

	return nil
}
