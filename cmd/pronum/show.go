package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/fc-pro-number/internal/share"
	"github.com/dgnsrekt/fc-pro-number/internal/view"
)

func showCmd() *cobra.Command {
	var (
		hf   hostFlags
		html bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Look up and display a viewer's Pro number",
		Long: `Resolve the viewer, fetch their Farcaster Pro position and render it.

Examples:
  # Fallback viewer
  pronum show

  # A specific fid
  pronum show --fid 1234

  # Identity from a frame context document, rendered as HTML
  pronum show --context context.json --html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := startSession(cmd.Context(), &hf)
			v := view.Render(st)

			out := cmd.OutOrStdout()
			if html {
				msg := share.NewComposer(cfg.App.ComposeURL, cfg.App.URL).Compose(st)
				return v.WriteHTML(out, view.HTMLOptions{
					AppURL:     msg.AppURL,
					ShareText:  msg.Text,
					ComposeURL: msg.ComposeURL,
				})
			}

			hint := fmt.Sprintf("pronum share --fid %d", st.FID())
			_, err := fmt.Fprintln(out, v.Terminal(hint))
			return err
		},
	}

	hf.register(cmd)
	cmd.Flags().BoolVar(&html, "html", false, "write the page HTML instead of the terminal view")

	return cmd
}
