package share

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
)

// CopiedNotice acknowledges a clipboard fallback.
const CopiedNotice = "Share text copied to clipboard!"

// URLOpener is the host's open-URL action.
type URLOpener interface {
	OpenURL(ctx context.Context, url string) error
}

// HostOpenURL hands the compose link to the host.
type HostOpenURL struct {
	Opener URLOpener
}

func (p HostOpenURL) Name() string { return "host_open_url" }

func (p HostOpenURL) Share(ctx context.Context, msg Message) error {
	if p.Opener == nil {
		return ErrUnavailable
	}
	return p.Opener.OpenURL(ctx, msg.ComposeURL)
}

// NativeShareFunc is a platform share sheet taking title, text and url.
type NativeShareFunc func(ctx context.Context, title, text, url string) error

// NativeShare delegates to the platform share capability if one exists.
type NativeShare struct {
	Func NativeShareFunc
}

func (p NativeShare) Name() string { return "native_share" }

func (p NativeShare) Share(ctx context.Context, msg Message) error {
	if p.Func == nil {
		return ErrUnavailable
	}
	return p.Func(ctx, msg.Title, msg.Text, msg.AppURL)
}

// Clipboard copies the share text and then notifies the user synchronously.
type Clipboard struct {
	// Write defaults to the system clipboard.
	Write  func(text string) error
	Notify func(notice string)
}

func (p Clipboard) Name() string { return "clipboard" }

func (p Clipboard) Share(_ context.Context, msg Message) error {
	write := p.Write
	if write == nil {
		if clipboard.Unsupported {
			return ErrUnavailable
		}
		write = clipboard.WriteAll
	}

	if err := write(msg.ClipboardText()); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	if p.Notify != nil {
		p.Notify(CopiedNotice)
	}
	return nil
}
