package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/alicepisa/mobileserver/pkg/server"
)

// ReportedError marks an error whose failure summary was already printed,
// so main does not print it a second time.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err already had its summary printed.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// Fail prints the total failure summary for err and returns it marked as
// reported. The exit code is still derived from the wrapped error.
func (f *formatter) Fail(operation string, err error) error {
	if err == nil {
		return nil
	}
	_ = f.PrintTotalFailureSummary(operation, err, server.ErrorCode(err))
	return &ReportedError{Err: err}
}

// PrintTotalFailureSummary prints total failure with error and suggestions
// Example output:
//
//	✗ Failed to start server: port already in use: :8000: listen tcp :8000: bind: address already in use
//
//	💡 Suggestions:
//	  → Stop the other server using this port
//	  → Or pick another port:    mobileserver --port 8001
//
// Text output goes to stderr; stdout carries only the connection banner.
func (f *formatter) PrintTotalFailureSummary(operation string, err error, errorCode string) error {
	if f.quiet {
		// Quiet mode: suppress summary
		return nil
	}

	if f.mode == ModeJSON {
		// JSON mode: structured output
		return f.PrintJSON(map[string]any{
			"success":    false,
			"operation":  operation,
			"error":      err.Error(),
			"error_code": errorCode,
		})
	}

	var sb strings.Builder

	errorMsg := fmt.Sprintf("✗ Failed to %s: %v", operation, err)
	if f.color {
		sb.WriteString(color.RedString("%s\n", errorMsg))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n", errorMsg))
	}

	// Suggestions based on error code
	suggestions := server.Suggestions(err)
	if len(suggestions) > 0 {
		sb.WriteString("\n💡 Suggestions:\n")
		for _, s := range suggestions {
			sb.WriteString(fmt.Sprintf("  → %s\n", s))
		}
	}

	_, writeErr := f.stderr.Write([]byte(sb.String()))
	return writeErr
}
