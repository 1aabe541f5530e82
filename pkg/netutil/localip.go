// Package netutil holds small network helpers used by the server runtime.
package netutil

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
)

// FallbackHost is shown to users when the LAN address cannot be determined.
const FallbackHost = "localhost"

// ErrResolution is wrapped by every ResolveLocalIP failure.
var ErrResolution = errors.New("local ip resolution failed")

// DialFunc matches (*net.Dialer).DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Resolver discovers the outbound-facing LAN address of this host.
//
// It "connects" a UDP socket to a remote address. No packet has to reach
// the remote side: connecting only asks the kernel to pick a route, and the
// socket's local address is the interface that route leaves through.
type Resolver struct {
	// Dial defaults to (&net.Dialer{}).DialContext.
	Dial DialFunc
}

// ResolveLocalIP resolves the LAN IPv4 address using the default resolver.
func ResolveLocalIP(ctx context.Context, probeAddr string) (net.IP, error) {
	return Resolver{}.ResolveLocalIP(ctx, probeAddr)
}

// DisplayHost returns the LAN IP as a string, or FallbackHost when it
// cannot be resolved. The result is never empty.
func DisplayHost(ctx context.Context, probeAddr string) string {
	return Resolver{}.DisplayHost(ctx, probeAddr)
}

// ResolveLocalIP returns the local IPv4 address chosen for probeAddr.
func (r Resolver) ResolveLocalIP(ctx context.Context, probeAddr string) (net.IP, error) {
	dial := r.Dial
	if dial == nil {
		dial = (&net.Dialer{}).DialContext
	}

	conn, err := dial(ctx, "udp4", probeAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolution, err)
	}
	defer func() { _ = conn.Close() }()

	ip := addrIP(conn.LocalAddr())
	if ip == nil {
		return nil, fmt.Errorf("%w: unexpected local address %v", ErrResolution, conn.LocalAddr())
	}

	ip4 := ip.To4()
	if ip4 == nil || ip4.IsUnspecified() {
		return nil, fmt.Errorf("%w: no usable IPv4 address (got %s)", ErrResolution, ip)
	}

	return ip4, nil
}

// DisplayHost applies the fallback policy on top of ResolveLocalIP.
func (r Resolver) DisplayHost(ctx context.Context, probeAddr string) string {
	ip, err := r.ResolveLocalIP(ctx, probeAddr)
	if err != nil {
		log.Ctx(ctx).Debug().
			Str("component", "netutil").
			Err(err).
			Msg("Falling back to localhost for display address")
		return FallbackHost
	}
	return ip.String()
}

func addrIP(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	default:
		return nil
	}
}
