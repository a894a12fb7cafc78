// Package browser hands URLs to the operating system's default browser.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"time"
)

// openTimeout bounds how long we wait for the launcher command itself; the
// browser keeps running independently.
const openTimeout = 10 * time.Second

// Opener launches URLs in the system default browser. Commands can be
// overridden for tests.
type Opener struct {
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewOpener creates an Opener using the platform launcher.
func NewOpener() *Opener {
	return &Opener{command: exec.CommandContext}
}

// Open validates the URL and passes it to the platform launcher
// (xdg-open on Linux, open on macOS, rundll32 on Windows).
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open non-http url %q", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, openTimeout)

	name, args := launcher(u.String())
	cmd := o.command(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("launching system browser: %w", err)
	}
	// Detach: the launcher exits quickly, the browser outlives us. The
	// context is released only once the launcher is done so it is not
	// killed the moment Open returns.
	go func() {
		defer cancel()
		_ = cmd.Wait()
	}()
	return nil
}

func launcher(target string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}
