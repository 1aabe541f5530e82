package server

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerError_WithErrorCodeAndUnwrap(t *testing.T) {
	if WithErrorCode(nil, "X") != nil {
		t.Errorf("expected nil when err is nil")
	}

	base := errors.New("base")
	wrapped := WithErrorCode(base, "CODE123")
	if wrapped.(*withCodeError).Code() != "CODE123" {
		t.Errorf("expected CODE123")
	}
	if !errors.Is(wrapped, base) {
		t.Errorf("unwrap mismatch")
	}
}

func TestServerError_NewInvalidPortError(t *testing.T) {
	err := NewInvalidPortError(99999)
	if !errors.Is(err, ErrInvalidPort) {
		t.Errorf("expected invalid port err")
	}
	if ErrorCode(err) != errorCodeInvalidPort {
		t.Errorf("expected code invalid_port")
	}
	if ExitCode(err) != 2 {
		t.Errorf("expected exit code 2, got %d", ExitCode(err))
	}
}

func TestServerError_WrapInvalidRoot(t *testing.T) {
	if WrapInvalidRoot(nil) != nil {
		t.Errorf("expected nil for nil input")
	}
	cause := errors.New("not a directory")
	err := WrapInvalidRoot(cause)
	require.ErrorIs(t, err, ErrInvalidRoot)
	require.ErrorIs(t, err, cause)
	require.Equal(t, 2, ExitCode(err))
}

func TestServerError_WrapBind_PortInUse(t *testing.T) {
	// Shape matches what net.Listen returns for an occupied port.
	opErr := &net.OpError{
		Op:  "listen",
		Net: "tcp",
		Err: &os.SyscallError{Syscall: "bind", Err: syscall.EADDRINUSE},
	}

	err := WrapBind(":8000", opErr)
	require.ErrorIs(t, err, ErrPortInUse)
	require.NotErrorIs(t, err, ErrBindFailed)
	require.Equal(t, errorCodePortInUse, ErrorCode(err))
	require.Equal(t, 3, ExitCode(err))
	require.Contains(t, err.Error(), ":8000")
}

func TestServerError_WrapBind_Other(t *testing.T) {
	require.NoError(t, WrapBind(":8000", nil))

	err := WrapBind("10.255.0.1:8000", errors.New("cannot assign requested address"))
	require.ErrorIs(t, err, ErrBindFailed)
	require.Equal(t, errorCodeBindFailed, ErrorCode(err))
	require.Equal(t, 3, ExitCode(err))
}

func TestServerError_WrapInvalidConfig(t *testing.T) {
	if WrapInvalidConfig(nil) != nil {
		t.Errorf("expected nil for nil input")
	}
	e := errors.New("bad")
	err := WrapInvalidConfig(e)
	if !errors.Is(err, e) {
		t.Errorf("unwrap mismatch")
	}
	if ErrorCode(err) != errorCodeInvalidConfig {
		t.Errorf("expected invalid config code")
	}
	if ExitCode(err) != 2 {
		t.Errorf("expected exit code 2")
	}
}

func TestServerError_WrapRuntime(t *testing.T) {
	require.NoError(t, WrapRuntime(nil))

	require.Equal(t, errorCodeRuntimeFailed, ErrorCode(WrapRuntime(errors.New("x"))))
	require.Equal(t, 1, ExitCode(WrapRuntime(errors.New("x"))))
}

func TestServerError_ErrorCodeFallbacks(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"bare invalid port", fmt.Errorf("x: %w", ErrInvalidPort), errorCodeInvalidPort},
		{"bare invalid root", fmt.Errorf("x: %w", ErrInvalidRoot), errorCodeInvalidRoot},
		{"bare port in use", fmt.Errorf("x: %w", ErrPortInUse), errorCodePortInUse},
		{"bare bind failed", fmt.Errorf("x: %w", ErrBindFailed), errorCodeBindFailed},
		{"config unavailable", ErrConfigUnavailable, errorCodeConfigUnavailable},
		{"unknown", errors.New("boom"), errorCodeRuntimeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestServerError_ExitCode(t *testing.T) {
	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, 1, ExitCode(ErrConfigUnavailable))
	require.Equal(t, 1, ExitCode(errors.New("boom")))
}

func TestServerError_Suggestions(t *testing.T) {
	require.Nil(t, Suggestions(nil))

	errs := []error{
		NewInvalidPortError(0),
		WrapInvalidRoot(errors.New("x")),
		fmt.Errorf("x: %w", ErrPortInUse),
		fmt.Errorf("x: %w", ErrBindFailed),
		ErrConfigUnavailable,
		WrapInvalidConfig(errors.New("x")),
		errors.New("runtime"),
	}
	for _, err := range errs {
		require.NotEmpty(t, Suggestions(err), "no suggestions for %v", err)
	}

	require.Nil(t, Suggestions(WithErrorCode(errors.New("x"), "UNKNOWN")))
	require.Contains(t, Suggestions(fmt.Errorf("x: %w", ErrPortInUse))[1], "--port")
}
