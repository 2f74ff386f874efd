// Package identity resolves the viewer's FID from the frame host, falling
// back to a configured constant when no host is available.
package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/frame"
)

// DefaultFallbackFID is used outside a frame host.
const DefaultFallbackFID int64 = 573

// Source records where an identity came from.
type Source string

const (
	SourceHost     Source = "host"
	SourceFallback Source = "fallback"
)

// Host is the subset of the frame SDK the resolver talks to.
type Host interface {
	Context(ctx context.Context) (*frame.Context, error)
	Ready(ctx context.Context) error
}

// Identity is the resolved viewer. Resolution cannot fail.
type Identity struct {
	FID    int64
	Source Source
	User   *frame.User
	// Ready is true when the host was told the app is ready.
	Ready bool
}

type Resolver struct {
	fallbackFID int64
	logger      *zap.Logger
}

func NewResolver(fallbackFID int64, logger *zap.Logger) *Resolver {
	if fallbackFID == 0 {
		fallbackFID = DefaultFallbackFID
	}
	return &Resolver{
		fallbackFID: fallbackFID,
		logger:      logger,
	}
}

// FallbackFID returns the identifier used when the host path fails.
func (r *Resolver) FallbackFID() int64 {
	return r.fallbackFID
}

// Resolve reads the viewer from host. A nil host, a host error or a context
// without a usable user all yield the fallback identity. Ready is signalled
// once whenever the host returned a context without error.
func (r *Resolver) Resolve(ctx context.Context, host Host) Identity {
	if host == nil {
		r.logger.Info("not in frame context, using fallback", zap.Int64("fid", r.fallbackFID))
		return r.fallback()
	}

	fc, err := host.Context(ctx)
	if err != nil {
		r.logger.Info("not in frame context, using fallback",
			zap.Int64("fid", r.fallbackFID),
			zap.Error(err),
		)
		return r.fallback()
	}

	id := r.fallback()
	if user := unwrapUser(fc); user != nil {
		id = Identity{FID: user.FID, Source: SourceHost, User: user}
	} else {
		r.logger.Debug("frame context has no user, using fallback", zap.Int64("fid", r.fallbackFID))
	}

	if err := host.Ready(ctx); err != nil {
		r.logger.Warn("signalling ready failed", zap.Error(err))
	} else {
		id.Ready = true
	}

	r.logger.Debug("identity resolved",
		zap.Int64("fid", id.FID),
		zap.String("source", string(id.Source)),
	)
	return id
}

func (r *Resolver) fallback() Identity {
	return Identity{FID: r.fallbackFID, Source: SourceFallback}
}

// unwrapUser returns the context user, unwrapping one level of self-nesting.
func unwrapUser(fc *frame.Context) *frame.User {
	if fc == nil || fc.User == nil {
		return nil
	}
	user := fc.User
	if user.User != nil {
		user = user.User
	}
	return user
}
