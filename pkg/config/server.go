package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
)

// DefaultPort is the port the demo server listens on unless overridden.
const DefaultPort = 8000

// DefaultProbeAddr is dialed over UDP to pick the outbound LAN address.
const DefaultProbeAddr = "8.8.8.8:80"

var validate = validator.New()

// ErrRootDir is returned when the served directory cannot be used.
var ErrRootDir = errors.New("invalid root directory")

// DefaultServerConfig returns the default server configuration.
// The defaults reproduce the original demo script: every interface,
// port 8000, the executable's own directory and a browser tab on start.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            "",
		Port:            DefaultPort,
		RootDir:         "",
		OpenBrowser:     true,
		Watch:           false,
		ProbeAddr:       DefaultProbeAddr,
		ShutdownTimeout: 5 * time.Second,
	}
}

// BindServerFlags binds server-specific flags to the provided FlagSet.
//
// Flags are namespaced under 'server.' so that posflag maps them straight
// onto koanf keys. Example: --server.port, --server.root_dir
func BindServerFlags(flags *pflag.FlagSet) {
	defaults := DefaultServerConfig()

	flags.String("server.addr", defaults.Addr, "Server listen address (empty for all interfaces)")
	flags.Int("server.port", defaults.Port, "Server listen port")
	flags.String("server.root_dir", defaults.RootDir, "Directory to serve (defaults to the executable's directory)")
	flags.Bool("server.open_browser", defaults.OpenBrowser, "Open the default browser on start")
	flags.Bool("server.watch", defaults.Watch, "Log file changes under the served directory")
	flags.String("server.probe_addr", defaults.ProbeAddr, "UDP address used to detect the LAN IP")
	flags.Duration("server.read_timeout", defaults.ReadTimeout, "HTTP read timeout")
	flags.Duration("server.write_timeout", defaults.WriteTimeout, "HTTP write timeout")
	flags.Duration("server.shutdown_timeout", defaults.ShutdownTimeout, "Graceful shutdown timeout")
}

// Validate checks the server configuration using struct tags.
func (c ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}

// ListenAddr returns the host:port the server binds to.
func (c ServerConfig) ListenAddr() string {
	return net.JoinHostPort(c.Addr, strconv.Itoa(c.Port))
}

// ResolveRootDir returns the absolute directory to serve.
//
// An empty dir resolves to the directory containing the running executable,
// so the served files do not depend on the caller's working directory.
func ResolveRootDir(dir string) (string, error) {
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("%w: locate executable: %v", ErrRootDir, err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir = filepath.Dir(exe)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", ErrRootDir, dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRootDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrRootDir, abs)
	}

	return abs, nil
}
