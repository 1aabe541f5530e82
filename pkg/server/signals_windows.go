//go:build windows

package server

import "os"

func rotationSignals() []os.Signal {
	return nil
}
