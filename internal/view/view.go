// Package view maps a session to one of the two display states.
package view

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dgnsrekt/fc-pro-number/internal/identity"
	"github.com/dgnsrekt/fc-pro-number/internal/launch"
	"github.com/dgnsrekt/fc-pro-number/internal/session"
)

// Kind selects the template.
type Kind string

const (
	KindSubscribed    Kind = "subscribed"
	KindNotSubscribed Kind = "not_subscribed"
)

const (
	subscribedTitle    = "YOUR PRO NUMBER"
	notSubscribedTitle = "YOU'RE NOT FARCASTER PRO"
	notSubscribedMark  = "😔"
	notSubscribedText  = "You haven't subscribed to Farcaster Pro yet"
)

// View is the display payload for a session.
type View struct {
	Kind               Kind   `json:"kind"`
	FID                int64  `json:"fid"`
	Title              string `json:"title"`
	Number             string `json:"number,omitempty"`
	Marker             string `json:"marker,omitempty"`
	Subtitle           string `json:"subtitle"`
	MinutesAfterLaunch int64  `json:"minutesAfterLaunch,omitempty"`
	ShareControl       bool   `json:"shareControl"`
	// HostIdentity is set when the fid came from the host rather than the
	// fallback, so the page does not need to resolve the viewer again.
	HostIdentity bool `json:"-"`
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPosition groups digits the en-US way: 4200 -> "4,200".
func FormatPosition(n int64) string {
	return printer.Sprintf("%d", n)
}

// Render is pure: the same session always yields the same view.
func Render(st session.State) View {
	if st.Record == nil {
		return View{
			Kind:         KindNotSubscribed,
			FID:          st.FID(),
			Title:        notSubscribedTitle,
			Marker:       notSubscribedMark,
			Subtitle:     notSubscribedText,
			HostIdentity: st.Identity.Source == identity.SourceHost,
		}
	}

	minutes := launch.MinutesAfterLaunch(st.Record.Timestamp)
	return View{
		Kind:               KindSubscribed,
		FID:                st.FID(),
		Title:              subscribedTitle,
		Number:             FormatPosition(st.Record.Position),
		Subtitle:           "Joined " + strconv.FormatInt(minutes, 10) + " minutes after launch",
		MinutesAfterLaunch: minutes,
		ShareControl:       true,
		HostIdentity:       st.Identity.Source == identity.SourceHost,
	}
}
