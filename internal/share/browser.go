package share

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/pkg/browser"
)

// BrowserOpener opens URLs with the desktop's default handler. It stands in
// for the host open-URL action when running outside a frame.
type BrowserOpener struct {
	// Open defaults to browser.OpenURL.
	Open func(url string) error
}

func (b BrowserOpener) OpenURL(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	open := b.Open
	if open == nil {
		open = browser.OpenURL
	}

	if err := open(url); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: no browser launcher: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("opening %s: %w", url, err)
	}
	return nil
}
