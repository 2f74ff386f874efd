package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/fc-pro-number/internal/api"
	"github.com/dgnsrekt/fc-pro-number/internal/frame"
	"github.com/dgnsrekt/fc-pro-number/internal/identity"
	"github.com/dgnsrekt/fc-pro-number/internal/session"
)

// hostFlags selects where the viewer identity comes from.
type hostFlags struct {
	fid         int64
	contextFile string
}

func (h *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&h.fid, "fid", 0, "viewer fid, as if provided by the frame host")
	cmd.Flags().StringVar(&h.contextFile, "context", "", "frame context JSON file")
}

// host returns nil when neither flag was given, which resolves to the
// fallback fid.
func (h *hostFlags) host() identity.Host {
	switch {
	case h.contextFile != "":
		fc, err := frame.LoadFile(h.contextFile)
		if err != nil {
			return &frame.StaticHost{Err: err}
		}
		return &frame.StaticHost{Frame: fc}
	case h.fid > 0:
		return &frame.StaticHost{Frame: &frame.Context{User: &frame.User{FID: h.fid}}}
	case h.fid < 0:
		return &frame.StaticHost{Err: errors.New("fid must be positive")}
	}
	return nil
}

func startSession(ctx context.Context, h *hostFlags) session.State {
	client := api.NewClient(cfg.API.BaseURL, cfg.API.RatePerSecond, cfg.API.Timeout(), logger)
	seq := session.NewSequencer(
		identity.NewResolver(cfg.Identity.FallbackFID, logger),
		api.NewFetcher(client, logger),
		logger,
	)
	return seq.Start(ctx, h.host())
}
