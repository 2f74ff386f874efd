package identity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/frame"
)

type failingReadyHost struct {
	frame.StaticHost
}

func (h *failingReadyHost) Ready(_ context.Context) error {
	return errors.New("ready rejected")
}

func newTestResolver(fallback int64) *Resolver {
	return NewResolver(fallback, zap.NewNop())
}

func TestResolve_HostUser(t *testing.T) {
	host := &frame.StaticHost{Frame: &frame.Context{User: &frame.User{FID: 1234, Username: "alice"}}}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 1234 {
		t.Errorf("expected fid 1234, got %d", id.FID)
	}
	if id.Source != SourceHost {
		t.Errorf("expected host source, got %s", id.Source)
	}
	if !id.Ready || host.ReadyCalls() != 1 {
		t.Errorf("expected exactly one ready signal, got %d", host.ReadyCalls())
	}
}

func TestResolve_NestedUserUnwrapsOneLevel(t *testing.T) {
	host := &frame.StaticHost{Frame: &frame.Context{User: &frame.User{
		User: &frame.User{FID: 42, Username: "inner"},
	}}}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 42 {
		t.Errorf("expected inner fid 42, got %d", id.FID)
	}
	if id.User == nil || id.User.Username != "inner" {
		t.Errorf("expected inner user, got %+v", id.User)
	}
}

func TestResolve_NestedUserOnlyOneLevel(t *testing.T) {
	host := &frame.StaticHost{Frame: &frame.Context{User: &frame.User{
		FID:  1,
		User: &frame.User{FID: 2, User: &frame.User{FID: 3}},
	}}}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 2 {
		t.Errorf("expected fid 2 after a single unwrap, got %d", id.FID)
	}
}

func TestResolve_NilHostUsesFallback(t *testing.T) {
	id := newTestResolver(0).Resolve(context.Background(), nil)
	if id.FID != DefaultFallbackFID {
		t.Errorf("expected fallback %d, got %d", DefaultFallbackFID, id.FID)
	}
	if id.Source != SourceFallback || id.Ready {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestResolve_HostErrorUsesFallback(t *testing.T) {
	host := &frame.StaticHost{Err: frame.ErrNoContext}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 573 {
		t.Errorf("expected 573, got %d", id.FID)
	}
	if host.ReadyCalls() != 0 {
		t.Errorf("ready must not be signalled on host error, got %d calls", host.ReadyCalls())
	}
}

func TestResolve_OverriddenFallback(t *testing.T) {
	id := newTestResolver(99).Resolve(context.Background(), &frame.StaticHost{Err: frame.ErrNoContext})
	if id.FID != 99 {
		t.Errorf("expected overridden fallback 99, got %d", id.FID)
	}
}

func TestResolve_ContextWithoutUser(t *testing.T) {
	host := &frame.StaticHost{Frame: &frame.Context{}}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 573 || id.Source != SourceFallback {
		t.Errorf("expected fallback identity, got %+v", id)
	}
	if host.ReadyCalls() != 1 {
		t.Errorf("expected ready on host path, got %d calls", host.ReadyCalls())
	}
}

func TestResolve_NilContextUsesFallback(t *testing.T) {
	host := &frame.StaticHost{}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 573 {
		t.Errorf("expected fallback, got %d", id.FID)
	}
}

func TestResolve_ReadyErrorSwallowed(t *testing.T) {
	host := &failingReadyHost{StaticHost: frame.StaticHost{Frame: &frame.Context{User: &frame.User{FID: 8}}}}

	id := newTestResolver(0).Resolve(context.Background(), host)
	if id.FID != 8 {
		t.Errorf("expected fid 8, got %d", id.FID)
	}
	if id.Ready {
		t.Error("expected Ready=false when host rejected the signal")
	}
}
