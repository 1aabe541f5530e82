package bind

import (
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/alicepisa/mobileserver/pkg/config"
	srv "github.com/alicepisa/mobileserver/pkg/server"
)

// ServerOptions holds the serve flags the user actually set.
// Nil fields leave the loaded configuration untouched.
type ServerOptions struct {
	Addr      *string
	Port      *int
	RootDir   *string
	NoBrowser *bool
	Watch     *bool
}

// RegisterServerFlags adds the user-facing serve flags to cmd.
func RegisterServerFlags(cmd *cobra.Command) {
	defaults := config.DefaultServerConfig()

	cmd.Flags().String("addr", defaults.Addr, "Listen address (empty for all interfaces)")
	cmd.Flags().IntP("port", "p", defaults.Port, "Listen port")
	cmd.Flags().StringP("root", "r", defaults.RootDir, "Directory to serve (defaults to the executable's directory)")
	cmd.Flags().Bool("no-browser", !defaults.OpenBrowser, "Do not open the default browser on start")
	cmd.Flags().BoolP("watch", "w", defaults.Watch, "Log file changes under the served directory")
}

// BindServerOptions extracts and validates serve command flags.
//
// Flags read:
//   - --addr: Listen address (e.g., "0.0.0.0", "192.168.1.10")
//   - --port: Listen port (1-65535)
//   - --root: Directory to serve
//   - --no-browser: Skip opening the browser
//   - --watch: Log changes under the served directory
//
// Returns an error if validation fails (e.g., invalid port range).
func BindServerOptions(cmd *cobra.Command) (ServerOptions, error) {
	var opts ServerOptions
	flags := cmd.Flags()

	if f := flags.Lookup("addr"); f != nil && f.Changed {
		addr := cast.ToString(f.Value.String())
		opts.Addr = &addr
	}

	if f := flags.Lookup("port"); f != nil && f.Changed {
		port := cast.ToInt(f.Value.String())
		// Validate port range
		if port < 1 || port > 65535 {
			return ServerOptions{}, srv.NewInvalidPortError(port)
		}
		opts.Port = &port
	}

	if f := flags.Lookup("root"); f != nil && f.Changed {
		root := cast.ToString(f.Value.String())
		opts.RootDir = &root
	}

	if f := flags.Lookup("no-browser"); f != nil && f.Changed {
		noBrowser := cast.ToBool(f.Value.String())
		opts.NoBrowser = &noBrowser
	}

	if f := flags.Lookup("watch"); f != nil && f.Changed {
		watch := cast.ToBool(f.Value.String())
		opts.Watch = &watch
	}

	return opts, nil
}

// Apply overlays the set options on cfg.
func (o ServerOptions) Apply(cfg config.ServerConfig) config.ServerConfig {
	if o.Addr != nil {
		cfg.Addr = *o.Addr
	}
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	if o.RootDir != nil {
		cfg.RootDir = *o.RootDir
	}
	if o.NoBrowser != nil {
		cfg.OpenBrowser = !*o.NoBrowser
	}
	if o.Watch != nil {
		cfg.Watch = *o.Watch
	}
	return cfg
}
