package server

import (
	"errors"
	"fmt"
	"syscall"
)

const (
	errorCodeInvalidPort       = "SERVER_INVALID_PORT"
	errorCodeInvalidRoot       = "SERVER_INVALID_ROOT"
	errorCodePortInUse         = "SERVER_PORT_IN_USE"
	errorCodeBindFailed        = "SERVER_BIND_FAILED"
	errorCodeConfigUnavailable = "SERVER_CONFIG_UNAVAILABLE"
	errorCodeInvalidConfig     = "SERVER_INVALID_CONFIG"
	errorCodeRuntimeFailed     = "SERVER_RUNTIME_FAILED"
)

var (
	// ErrInvalidPort indicates an invalid port flag value.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidRoot indicates the served directory is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid root directory")
	// ErrPortInUse indicates another process already listens on the port.
	ErrPortInUse = errors.New("port already in use")
	// ErrBindFailed indicates the listener could not be created.
	ErrBindFailed = errors.New("bind failed")
	// ErrConfigUnavailable indicates the CLI context lacked a config manager.
	ErrConfigUnavailable = errors.New("config manager unavailable")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string {
	return e.code
}

func (e *withCodeError) Unwrap() error {
	return e.error
}

// WithErrorCode annotates err with a server error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// NewInvalidPortError formats an invalid port error with context.
func NewInvalidPortError(port int) error {
	return WithErrorCode(fmt.Errorf("%w: invalid port %d: must be between 1 and 65535", ErrInvalidPort, port), errorCodeInvalidPort)
}

// WrapInvalidRoot annotates root directory resolution failures.
func WrapInvalidRoot(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: %w", ErrInvalidRoot, err), errorCodeInvalidRoot)
}

// WrapBind annotates listener failures. EADDRINUSE is reported as ErrPortInUse.
func WrapBind(addr string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return WithErrorCode(fmt.Errorf("%w: %s: %w", ErrPortInUse, addr, err), errorCodePortInUse)
	}
	return WithErrorCode(fmt.Errorf("%w: %s: %w", ErrBindFailed, addr, err), errorCodeBindFailed)
}

// WrapInvalidConfig annotates server config validation errors.
func WrapInvalidConfig(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("invalid server configuration: %w", err), errorCodeInvalidConfig)
}

// WrapRuntime annotates server runtime failures.
func WrapRuntime(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(err, errorCodeRuntimeFailed)
}

// ErrorCode resolves a server error to its error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, ErrInvalidPort):
		return errorCodeInvalidPort
	case errors.Is(err, ErrInvalidRoot):
		return errorCodeInvalidRoot
	case errors.Is(err, ErrPortInUse):
		return errorCodePortInUse
	case errors.Is(err, ErrBindFailed):
		return errorCodeBindFailed
	case errors.Is(err, ErrConfigUnavailable):
		return errorCodeConfigUnavailable
	default:
		return errorCodeRuntimeFailed
	}
}

// ExitCode maps server errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrInvalidPort),
		errors.Is(err, ErrInvalidRoot),
		ErrorCode(err) == errorCodeInvalidConfig:
		return 2
	case errors.Is(err, ErrPortInUse),
		errors.Is(err, ErrBindFailed):
		return 3
	default:
		return 1
	}
}

// Suggestions provides CLI hints for server errors.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodeInvalidPort:
		return []string{
			"Use a port between 1 and 65535",
			"Example:                 mobileserver --port 8080",
		}
	case errorCodeInvalidRoot:
		return []string{
			"Point --root at an existing directory",
			"Example:                 mobileserver --root ./site",
		}
	case errorCodePortInUse:
		return []string{
			"Stop the other server using this port",
			"Or pick another port:    mobileserver --port 8001",
		}
	case errorCodeBindFailed:
		return []string{
			"Check that --addr is an address of this machine",
			"Ports below 1024 may need elevated privileges",
		}
	case errorCodeConfigUnavailable:
		return []string{
			"Run via the mobileserver CLI so configuration is loaded",
		}
	case errorCodeInvalidConfig:
		return []string{
			"Check configuration values in config file",
			"Inspect the merged settings: mobileserver config",
		}
	case errorCodeRuntimeFailed:
		return []string{
			"Check server logs for runtime errors",
			"Retry with debug logging:  mobileserver --debug",
		}
	default:
		return nil
	}
}
