// Package static serves a directory tree over HTTP.
package static

import (
	"mime"
	"net/http"
	"sync"

	"github.com/rs/zerolog"
)

// extraTypes fills gaps in some platform MIME tables for files common in
// browser demos. Without them a phone may refuse a module script or wasm.
var extraTypes = map[string]string{
	".wasm":        "application/wasm",
	".mjs":         "text/javascript; charset=utf-8",
	".webmanifest": "application/manifest+json",
	".json":        "application/json",
	".svg":         "image/svg+xml",
}

var registerOnce sync.Once

func registerTypes(logger zerolog.Logger) {
	registerOnce.Do(func() {
		for ext, typ := range extraTypes {
			if err := mime.AddExtensionType(ext, typ); err != nil {
				logger.Warn().Err(err).Str("ext", ext).Msg("Failed to register MIME type")
			}
		}
	})
}

// NewHandler creates an HTTP handler for the files under root.
//
// Behaviour follows net/http's FileServer:
//   - files are served with a Content-Type inferred from the extension,
//     falling back to content sniffing
//   - a directory serves its index.html if present, otherwise a listing
//   - a directory requested without a trailing slash is redirected
//   - paths cannot escape root
func NewHandler(root string, logger zerolog.Logger) http.Handler {
	registerTypes(logger)

	logger.Info().
		Str("component", "static").
		Str("root", root).
		Msg("Serving files from disk")

	return http.FileServer(http.Dir(root))
}
