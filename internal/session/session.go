// Package session sequences one viewer's visit: resolve identity, fetch the
// position record, then hand an immutable State to the renderers.
package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/api"
	"github.com/dgnsrekt/fc-pro-number/internal/identity"
)

// Phase is a step of the linear session lifecycle.
type Phase string

const (
	PhaseInit             Phase = "init"
	PhaseIdentityResolved Phase = "identity_resolved"
	PhaseDataFetched      Phase = "data_fetched"
	PhaseRendered         Phase = "rendered"
)

// State is written once by Start and read-only afterwards.
type State struct {
	ID       uuid.UUID
	Phase    Phase
	Identity identity.Identity
	Record   *api.Record
	Outcome  api.Outcome
}

// FID returns the resolved viewer FID.
func (s State) FID() int64 {
	return s.Identity.FID
}

// Subscribed reports whether a position record is present.
func (s State) Subscribed() bool {
	return s.Record != nil
}

// Rendered returns a copy of s marked as rendered.
func (s State) Rendered() State {
	s.Phase = PhaseRendered
	return s
}

// Fetcher looks up a position record and never fails.
type Fetcher interface {
	Lookup(ctx context.Context, fid int64) api.Lookup
}

type Sequencer struct {
	resolver *identity.Resolver
	fetcher  Fetcher
	logger   *zap.Logger
}

func NewSequencer(resolver *identity.Resolver, fetcher Fetcher, logger *zap.Logger) *Sequencer {
	return &Sequencer{
		resolver: resolver,
		fetcher:  fetcher,
		logger:   logger,
	}
}

// Start runs identity resolution and then the position fetch, strictly in
// that order, and returns the session ready to render.
func (s *Sequencer) Start(ctx context.Context, host identity.Host) State {
	st := State{ID: uuid.New(), Phase: PhaseInit}

	st.Identity = s.resolver.Resolve(ctx, host)
	st.Phase = PhaseIdentityResolved

	return s.fetch(ctx, st)
}

// StartWithFID skips host resolution for an identity already known, e.g.
// the fid carried by a share link.
func (s *Sequencer) StartWithFID(ctx context.Context, fid int64) State {
	st := State{
		ID:       uuid.New(),
		Phase:    PhaseIdentityResolved,
		Identity: identity.Identity{FID: fid, Source: identity.SourceHost},
	}
	return s.fetch(ctx, st)
}

func (s *Sequencer) fetch(ctx context.Context, st State) State {
	lookup := s.fetcher.Lookup(ctx, st.Identity.FID)
	st.Record = lookup.Record
	st.Outcome = lookup.Outcome
	st.Phase = PhaseDataFetched

	s.logger.Info("session ready",
		zap.String("session", st.ID.String()),
		zap.Int64("fid", st.Identity.FID),
		zap.String("source", string(st.Identity.Source)),
		zap.String("outcome", string(st.Outcome)),
	)
	return st
}
