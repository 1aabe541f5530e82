package server

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
)

// NotifyLogRotation calls reopen each time the process receives the log
// rotation signal (SIGUSR1), until ctx is done. Platforms without that
// signal never call reopen.
func NotifyLogRotation(ctx context.Context, reopen func() error) {
	sigs := rotationSignals()
	if len(sigs) == 0 {
		return
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, sigs...)

	go func() {
		defer signal.Stop(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-signals:
				log.Info().Msgf("Closing and re-opening log files for rotation: %+v", sig)
				if err := reopen(); err != nil {
					log.Error().Err(err).Msg("Failed to re-open log file")
				}
			}
		}
	}()
}
