package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/alicepisa/mobileserver/pkg/banner"
	"github.com/alicepisa/mobileserver/pkg/config"
	"github.com/alicepisa/mobileserver/pkg/launch"
	"github.com/alicepisa/mobileserver/pkg/logging"
	"github.com/alicepisa/mobileserver/pkg/netutil"
	"github.com/alicepisa/mobileserver/pkg/server"
	"github.com/alicepisa/mobileserver/pkg/server/httpx"
	"github.com/alicepisa/mobileserver/pkg/watch"
)

const defaultShutdownTimeout = 5 * time.Second

// App orchestrates the server runtime components:
// - HTTP server over the root directory
// - Connection banner and browser launch
// - Optional change watcher
// - Lifecycle management
type App struct {
	HTTP   *http.Server
	Ready  *atomic.Bool
	Config config.ServerConfig
	Root   string
	Deps   *Deps

	mu   sync.Mutex
	addr net.Addr
}

// New creates and configures a new server application.
// Port 0 asks the kernel for a free port; Addr reports it once Run has bound.
func New(ctx context.Context, cfg config.ServerConfig, deps *Deps) (*App, error) {
	if deps == nil {
		deps = &Deps{}
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.Opener == nil {
		deps.Opener = launch.Browser{}
	}

	deps.Logger.Debug().Msg("Initializing server application")

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, server.NewInvalidPortError(cfg.Port)
	}

	root, err := config.ResolveRootDir(cfg.RootDir)
	if err != nil {
		return nil, server.WrapInvalidRoot(err)
	}

	httpServer := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      httpx.Chain(deps.Logger, httpx.NewRouter(root, deps.Logger)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     logging.StdLogger(deps.Logger.With().Str("component", "http").Logger(), zerolog.WarnLevel),
		BaseContext: func(net.Listener) context.Context {
			return deps.Logger.WithContext(ctx)
		},
	}

	return &App{
		HTTP:   httpServer,
		Ready:  &atomic.Bool{},
		Config: cfg,
		Root:   root,
		Deps:   deps,
	}, nil
}

// Addr returns the bound listener address, or nil before Run has bound.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addr
}

// Run binds the listener, prints the banner, opens the browser and serves
// until ctx is canceled. Cancellation is a clean stop and returns nil.
func (a *App) Run(ctx context.Context) error {
	logger := a.Deps.Logger
	ctx = logger.WithContext(ctx)

	ln, err := net.Listen("tcp", a.HTTP.Addr)
	if err != nil {
		return server.WrapBind(a.HTTP.Addr, err)
	}

	a.mu.Lock()
	a.addr = ln.Addr()
	a.mu.Unlock()

	port := a.Config.Port
	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcp.Port
	}

	logger.Info().
		Str("addr", ln.Addr().String()).
		Str("root", a.Root).
		Bool("watch", a.Config.Watch).
		Msg("Starting demo server")

	info := banner.Info{
		Host: a.displayHost(ctx, ln.Addr()),
		Port: port,
	}
	if err := banner.Print(a.Deps.Out, info, a.Deps.Color); err != nil {
		logger.Warn().Err(err).Msg("Failed to print banner")
	}

	// Start HTTP server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := a.HTTP.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if a.Config.OpenBrowser {
		if err := a.Deps.Opener.Open(ctx, info.LocalURL()); err != nil {
			logger.Warn().Err(err).Str("url", info.LocalURL()).Msg("Could not open browser")
		}
	}

	var watchDone chan struct{}
	if a.Config.Watch {
		watchDone = a.startWatcher(ctx)
	}

	// Mark as ready
	a.Ready.Store(true)
	logger.Info().Msg("Server is ready and accepting connections")

	// Wait for shutdown signal or server error
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("Server error")
		runErr = server.WrapRuntime(err)
	}

	// Graceful shutdown
	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = server.WrapRuntime(err)
	}
	if watchDone != nil {
		<-watchDone
	}
	return runErr
}

// displayHost picks the host shown as the mobile address. A listener on a
// specific address is only reachable there, and loopback is not reachable
// from a phone at all.
func (a *App) displayHost(ctx context.Context, bound net.Addr) string {
	if tcp, ok := bound.(*net.TCPAddr); ok && tcp.IP != nil && !tcp.IP.IsUnspecified() {
		if tcp.IP.IsLoopback() {
			return netutil.FallbackHost
		}
		return tcp.IP.String()
	}
	return a.Deps.Resolver.DisplayHost(ctx, a.Config.ProbeAddr)
}

func (a *App) startWatcher(ctx context.Context) chan struct{} {
	done := make(chan struct{})

	w, err := watch.New(a.Root, a.Deps.Logger)
	if err != nil {
		a.Deps.Logger.Warn().Err(err).Msg("File watching unavailable")
		close(done)
		return done
	}

	go func() {
		defer close(done)
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Deps.Logger.Warn().Err(err).Msg("File watcher stopped")
		}
	}()
	return done
}

// shutdown performs graceful shutdown of the HTTP server.
func (a *App) shutdown() error {
	a.Deps.Logger.Info().Msg("Initiating graceful shutdown")

	timeout := a.Config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Mark as not ready
	a.Ready.Store(false)

	if err := a.HTTP.Shutdown(shutdownCtx); err != nil {
		a.Deps.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
		return err
	}

	a.Deps.Logger.Info().Msg("Server shutdown complete")
	return nil
}
