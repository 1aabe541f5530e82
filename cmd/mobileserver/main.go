package main

import (
	"fmt"
	"os"

	"github.com/alicepisa/mobileserver/cmd/mobileserver/commands"
	"github.com/alicepisa/mobileserver/cmd/mobileserver/internal/format"
	"github.com/alicepisa/mobileserver/pkg/server"
)

// main runs the mobileserver CLI and exits with a code derived from the error.
//
// Exit codes:
//   - 0: Success, including a Ctrl+C stop
//   - 1: General error (default)
//   - 2: Invalid input (port, root directory, configuration)
//   - 3: Listener could not bind (port in use)
func main() {
	command := commands.NewCommand()

	if err := command.Execute(); err != nil {
		if !format.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(server.ExitCode(err))
	}
}
