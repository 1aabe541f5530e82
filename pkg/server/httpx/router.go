package httpx

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/alicepisa/mobileserver/pkg/static"
)

// NewRouter mounts the static file handler for root at "/".
// There are no other routes: every path maps to a file or directory listing.
func NewRouter(root string, logger zerolog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", static.NewHandler(root, logger))
	return mux
}
