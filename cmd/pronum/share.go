package main

import (
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/share"
)

func shareCmd() *cobra.Command {
	var (
		hf       hostFlags
		noOpen   bool
		printURL bool
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Compose a Warpcast post about your Pro number",
		Long: `Compose the share post and hand it off: open the compose link, or
copy the text to the clipboard when no browser is available.

Examples:
  pronum share --fid 1234
  pronum share --fid 1234 --no-open
  pronum share --print-url`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			st := startSession(ctx, &hf)
			msg := share.NewComposer(cfg.App.ComposeURL, cfg.App.URL).Compose(st)

			if printURL {
				_, err := fmt.Fprintln(out, msg.ComposeURL)
				return err
			}

			opener := share.HostOpenURL{}
			if !noOpen {
				// Keep launcher chatter off stdout, which may be piped.
				browser.Stdout = cmd.ErrOrStderr()
				opener.Opener = share.BrowserOpener{}
			}

			chain := share.NewChain(logger,
				opener,
				share.NativeShare{},
				share.Clipboard{Notify: func(notice string) { fmt.Fprintln(out, notice) }},
			)

			res := chain.Share(ctx, msg)
			if !res.OK() {
				// Nothing could take the post; print it so it is not lost.
				logger.Warn("share fallbacks exhausted", zap.Errors("errors", res.Errors))
				_, err := fmt.Fprintln(out, msg.ClipboardText())
				return err
			}

			logger.Info("shared", zap.String("provider", res.Provider), zap.Int64("fid", st.FID()))
			return nil
		},
	}

	hf.register(cmd)
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "skip opening the compose link")
	cmd.Flags().BoolVar(&printURL, "print-url", false, "print the compose URL and exit")

	return cmd
}
