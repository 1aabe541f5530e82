package netutil

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConn reports a fixed local address; every other method is unused.
type fakeConn struct {
	net.Conn
	local  net.Addr
	closed bool
}

func (c *fakeConn) LocalAddr() net.Addr { return c.local }
func (c *fakeConn) Close() error        { c.closed = true; return nil }

func dialReturning(conn net.Conn, err error) DialFunc {
	return func(context.Context, string, string) (net.Conn, error) {
		return conn, err
	}
}

func TestResolver_ResolveLocalIP(t *testing.T) {
	conn := &fakeConn{local: &net.UDPAddr{IP: net.ParseIP("192.168.1.10"), Port: 53211}}
	r := Resolver{Dial: dialReturning(conn, nil)}

	ip, err := r.ResolveLocalIP(context.Background(), "8.8.8.8:80")
	require.NoError(t, err)
	require.Equal(t, "192.168.1.10", ip.String())
	require.True(t, conn.closed, "probe socket must be closed")
}

func TestResolver_ResolveLocalIP_Errors(t *testing.T) {
	tests := []struct {
		name string
		dial DialFunc
	}{
		{"no route", dialReturning(nil, errors.New("connect: network is unreachable"))},
		{"unspecified", dialReturning(&fakeConn{local: &net.UDPAddr{IP: net.IPv4zero}}, nil)},
		{"ipv6 only", dialReturning(&fakeConn{local: &net.UDPAddr{IP: net.ParseIP("2001:db8::1")}}, nil)},
		{"unknown addr type", dialReturning(&fakeConn{local: &net.UnixAddr{Name: "/tmp/sock", Net: "unix"}}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolver{Dial: tt.dial}.ResolveLocalIP(context.Background(), "8.8.8.8:80")
			require.ErrorIs(t, err, ErrResolution)
		})
	}
}

func TestResolver_DisplayHost_FallsBackToLocalhost(t *testing.T) {
	r := Resolver{Dial: dialReturning(nil, errors.New("socket: operation not permitted"))}
	require.Equal(t, "localhost", r.DisplayHost(context.Background(), "8.8.8.8:80"))
}

func TestResolver_DisplayHost_ReturnsIP(t *testing.T) {
	conn := &fakeConn{local: &net.UDPAddr{IP: net.ParseIP("10.0.0.42")}}
	r := Resolver{Dial: dialReturning(conn, nil)}
	require.Equal(t, "10.0.0.42", r.DisplayHost(context.Background(), "8.8.8.8:80"))
}

func TestResolveLocalIP_Loopback(t *testing.T) {
	// Connecting a UDP socket sends nothing, so a loopback probe works offline.
	ip, err := ResolveLocalIP(context.Background(), "127.0.0.1:9")
	require.NoError(t, err)
	require.True(t, ip.IsLoopback(), "got %s", ip)
}

func TestDisplayHost_NeverEmpty(t *testing.T) {
	for _, probe := range []string{"8.8.8.8:80", "127.0.0.1:9", "invalid-probe"} {
		require.NotEmpty(t, DisplayHost(context.Background(), probe), probe)
	}
}

func TestDisplayHost_BadProbeFallsBack(t *testing.T) {
	require.Equal(t, FallbackHost, DisplayHost(context.Background(), "not a host:port"))
}
