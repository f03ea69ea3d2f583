package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// Exit codes of the idl command.
const (
	ExitSuccess      = 0 // Everything converted or ran
	ExitFailure      = 1 // Input out of range, or an IDL job did not finish
	ExitCommandError = 2 // Bad arguments, unreadable files, bad config
)

// Error codes in CLI output.
const (
	ErrCodeGeneric   = "E001" // Unclassified error
	ErrCodeArgs      = "E002" // Malformed argument
	ErrCodeConfig    = "E003" // Config file could not be used
	ErrCodeNotFound  = "E005" // File or directory not found
	ErrCodeRange     = "E101" // Value outside the supported range
	ErrCodeSyntax    = "E102" // Unparseable date list
	ErrCodeJobFailed = "E201" // IDL job failed
)

// ExitError carries the exit code a command failed with.
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

// GetExitCode returns the exit code for err, ExitFailure when err is not an
// *ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter writes results as text or as JSON envelopes.
// Text output uses the String method of the result.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the JSON envelope.
type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError is the error part of a JSON response.
type CLIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func newFormatter(opts *RootOptions, w, errW io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w, ErrWriter: errW, Verbose: opts.Verbose}
}

// Success writes a result.
func (f *OutputFormatter) Success(data fmt.Stringer) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprint(f.Writer, data.String())
	return err
}

// Error writes an error.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// VerboseLog writes to ErrWriter in verbose mode only.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Fail reports err and returns the matching *ExitError.
func (f *OutputFormatter) Fail(err error) error {
	code, exit := classify(err)
	var details interface{}
	var re *idl.RangeError
	if errors.As(err, &re) {
		details = map[string]interface{}{"op": re.Op, "field": re.Field, "value": re.Value}
	}
	if werr := f.Error(code, err.Error(), details); werr != nil {
		return werr
	}
	return &ExitError{Code: exit, Message: code, Err: err}
}

func classify(err error) (string, int) {
	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Message, exitErr.Code
	case idl.IsRangeError(err):
		return ErrCodeRange, ExitFailure
	case errors.Is(err, idl.ErrSyntax), errors.Is(err, idl.ErrNoDates):
		return ErrCodeSyntax, ExitCommandError
	}
	return ErrCodeGeneric, ExitCommandError
}

// argError marks a malformed command line argument.
func argError(format string, args ...interface{}) *ExitError {
	return &ExitError{Code: ExitCommandError, Message: ErrCodeArgs, Err: fmt.Errorf(format, args...)}
}
