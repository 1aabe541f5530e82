package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/bind"
	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/format"
	"github.com/alicepisa/mobileserver/pkg/appctx"
	"github.com/alicepisa/mobileserver/pkg/launch"
	"github.com/alicepisa/mobileserver/pkg/logging"
	srv "github.com/alicepisa/mobileserver/pkg/server"
	"github.com/alicepisa/mobileserver/pkg/server/app"
)

// runServe starts the demo server and blocks until SIGINT/SIGTERM.
//
// Configuration precedence: defaults, config file, MOBILESERVER_* env vars,
// --server.* flags, then the short flags (--port, --root, ...).
func runServe(cmd *cobra.Command, _ []string) error {
	formatter := format.FromCommand(cmd)

	// Bind flags to options using centralized binder
	opts, err := bind.BindServerOptions(cmd)
	if err != nil {
		return formatter.Fail("start server", err)
	}

	// Get config manager from context
	cfgMgr, ok := appctx.Config(cmd.Context())
	if !ok {
		return formatter.Fail("start server", srv.ErrConfigUnavailable)
	}

	cfg := opts.Apply(cfgMgr.Get().Server)
	if err := cfg.Validate(); err != nil {
		return formatter.Fail("start server", srv.WrapInvalidConfig(err))
	}

	color := true
	if flag := cmd.Flags().Lookup("no-color"); flag != nil && cast.ToBool(flag.Value.String()) {
		color = false
	}

	deps := &app.Deps{
		Logger: logging.NewLogger("server", zerolog.GlobalLevel()),
		Out:    cmd.OutOrStdout(),
		Color:  color,
		Opener: launch.Browser{},
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv.NotifyLogRotation(ctx, logging.ReopenLogFile)

	serverApp, err := app.New(ctx, cfg, deps)
	if err != nil {
		return formatter.Fail("start server", err)
	}

	// Run server (blocks until shutdown)
	if err := serverApp.Run(ctx); err != nil {
		return formatter.Fail("start server", err)
	}

	return nil
}
