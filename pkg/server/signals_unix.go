//go:build !windows

package server

import (
	"os"
	"syscall"
)

func rotationSignals() []os.Signal {
	return []os.Signal{syscall.SIGUSR1}
}
