// Package launch opens URLs in the user's default browser.
package launch

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/browser"
)

// browser.Stdout and browser.Stderr are package globals read when the
// launcher starts, so opens are serialized.
var (
	openMu  sync.Mutex
	openURL = browser.OpenURL
)

//go:generate mockgen -source launch.go -destination mock/launch.go

// Opener opens a URL for the user.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error { return f(ctx, url) }

// Browser opens URLs with the platform launcher (xdg-open, open, rundll32).
type Browser struct {
	// Output receives the launcher's stdout/stderr. Nil discards it so the
	// connection banner is not interleaved with launcher noise.
	Output io.Writer
}

// Open starts the default browser on url.
func (b Browser) Open(_ context.Context, url string) error {
	out := b.Output
	if out == nil {
		out = io.Discard
	}

	openMu.Lock()
	defer openMu.Unlock()

	browser.Stdout = out
	browser.Stderr = out
	return openURL(url)
}

// Noop never opens anything. Used when the browser is disabled.
type Noop struct{}

func (Noop) Open(context.Context, string) error { return nil }
