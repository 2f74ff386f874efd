// Package share composes the Warpcast post for a session and dispatches it
// through an ordered chain of share providers.
package share

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/fc-pro-number/internal/launch"
	"github.com/dgnsrekt/fc-pro-number/internal/session"
	"github.com/dgnsrekt/fc-pro-number/internal/view"
)

const (
	DefaultAppURL     = "https://fc-pro-num.kasra.codes/"
	DefaultComposeURL = "https://warpcast.com/~/compose"

	// NotSubscribedText is shared when the viewer has no position record.
	NotSubscribedText = "I'm not a Farcaster Pro user yet, check if you are!"

	shareTitle = "My Farcaster Pro Number"
)

// Message is everything a provider may need to share a session.
type Message struct {
	Title      string
	Text       string
	AppURL     string
	ComposeURL string
}

// ClipboardText is the text copied when no richer share path exists.
func (m Message) ClipboardText() string {
	return m.Text + " " + m.AppURL
}

type Composer struct {
	composeBase string
	appURL      string
}

func NewComposer(composeBase, appURL string) *Composer {
	if composeBase == "" {
		composeBase = DefaultComposeURL
	}
	if appURL == "" {
		appURL = DefaultAppURL
	}
	return &Composer{composeBase: composeBase, appURL: appURL}
}

// Compose builds the share message for st.
func (c *Composer) Compose(st session.State) Message {
	text := Text(st)
	return Message{
		Title:      shareTitle,
		Text:       text,
		AppURL:     c.appURL,
		ComposeURL: ComposeURL(c.composeBase, text, c.appURL),
	}
}

// Text returns the post body for st.
func Text(st session.State) string {
	if st.Record == nil || st.Record.Position == 0 {
		return NotSubscribedText
	}
	minutes := launch.MinutesAfterLaunch(st.Record.Timestamp)
	return fmt.Sprintf("I am Farcaster Pro User #%s (approx), I signed up %d minutes after launch!",
		view.FormatPosition(st.Record.Position), minutes)
}

// ComposeURL builds the compose link with text and one embed.
func ComposeURL(base, text, embed string) string {
	return base + "?text=" + EncodeURIComponent(text) + "&embeds[]=" + EncodeURIComponent(embed)
}

// EncodeURIComponent escapes s the way browsers do for a URI component:
// everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isUnreservedComponent(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0f])
	}
	return sb.String()
}

func isUnreservedComponent(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	switch b {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
