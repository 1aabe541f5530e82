// Package commands wires the mobileserver CLI.
package commands

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/bind"
	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/format"
	"github.com/alicepisa/mobileserver/pkg/appctx"
	"github.com/alicepisa/mobileserver/pkg/config"
	"github.com/alicepisa/mobileserver/pkg/logging"
	"github.com/alicepisa/mobileserver/pkg/paths"
	srv "github.com/alicepisa/mobileserver/pkg/server"
)

const cliExecutable = "mobileserver"

// NewCommand constructs the top-level mobileserver command. Run without a
// subcommand it serves the demo directory until interrupted.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
		logCloser      io.Closer
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Serve a demo folder to phones on the same WiFi",
		Long: `mobileserver serves a directory of static demo files over HTTP on every
network interface, prints the address a phone on the same WiFi should open,
and opens the local address in the default browser.

Without --root the directory containing the mobileserver executable is
served. Everything in it is readable by anyone on the network, so point
--root at the demo folder when the binary lives in a shared bin directory.

Press Ctrl+C to stop the server.`,
		Example: `  mobileserver
  mobileserver --root ./site --port 8080
  mobileserver --no-browser --watch`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := configFile
			if path == "" {
				path = paths.DefaultConfigFile()
			}

			mgr := config.NewManager()
			if err := mgr.Load(cmd.Flags(), path); err != nil {
				return format.FromCommand(cmd).Fail("load configuration", srv.WrapInvalidConfig(err))
			}
			if err := mgr.Validate(); err != nil {
				return format.FromCommand(cmd).Fail("load configuration", srv.WrapInvalidConfig(err))
			}

			closer, err := logging.ConfigureGlobalLogging(mgr.Get().Log)
			if err != nil {
				return format.FromCommand(cmd).Fail("configure logging", err)
			}
			logCloser = closer

			if verbosityCount > 0 {
				logging.ConfigureGlobal(logging.VerbosityLevel(zerolog.GlobalLevel(), verbosityCount))
			}

			ctx := appctx.WithConfig(cmd.Context(), mgr)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		RunE: runServe,
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path (default $XDG_CONFIG_HOME/mobileserver/config.yaml)")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	config.BindFlags(cmd.PersistentFlags())

	// Long-form server.* flags map one-to-one onto config keys. The common
	// ones have short aliases on the root command, so hide the duplicates.
	config.BindServerFlags(cmd.PersistentFlags())
	for _, name := range []string{"server.addr", "server.port", "server.root_dir", "server.open_browser", "server.watch"} {
		_ = cmd.PersistentFlags().MarkHidden(name)
	}

	bind.RegisterServerFlags(cmd)

	cmd.AddCommand(newVersionCommand(cliExecutable))
	cmd.AddCommand(newConfigCommand())

	return cmd
}
