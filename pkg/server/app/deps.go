package app

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/alicepisa/mobileserver/pkg/launch"
	"github.com/alicepisa/mobileserver/pkg/netutil"
)

// Deps holds dependencies for the server application.
// This pattern enables dependency injection and easier testing.
type Deps struct {
	// Logger for structured logging (injected by caller)
	Logger zerolog.Logger

	// Out receives the connection banner. Defaults to os.Stdout.
	Out io.Writer

	// Color enables lipgloss accents on the banner.
	Color bool

	// Opener launches the browser. Defaults to launch.Browser.
	Opener launch.Opener

	// Resolver finds the LAN address shown in the banner.
	Resolver netutil.Resolver
}
