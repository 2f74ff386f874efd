package session

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/fc-pro-number/internal/api"
	"github.com/dgnsrekt/fc-pro-number/internal/frame"
	"github.com/dgnsrekt/fc-pro-number/internal/identity"
)

type recordingFetcher struct {
	calls  []int64
	lookup api.Lookup
}

func (f *recordingFetcher) Lookup(_ context.Context, fid int64) api.Lookup {
	f.calls = append(f.calls, fid)
	return f.lookup
}

func newTestSequencer(f Fetcher) *Sequencer {
	return NewSequencer(identity.NewResolver(0, zap.NewNop()), f, zap.NewNop())
}

func TestStart_ResolvesThenFetches(t *testing.T) {
	rec := &api.Record{Position: 4200, Timestamp: time.Date(2025, 5, 27, 20, 5, 0, 0, time.UTC)}
	fetcher := &recordingFetcher{lookup: api.Lookup{Record: rec, Outcome: api.OutcomeFound}}
	host := &frame.StaticHost{Frame: &frame.Context{User: &frame.User{FID: 1234}}}

	st := newTestSequencer(fetcher).Start(context.Background(), host)

	if len(fetcher.calls) != 1 || fetcher.calls[0] != 1234 {
		t.Fatalf("expected one lookup for fid 1234, got %v", fetcher.calls)
	}
	if st.Phase != PhaseDataFetched {
		t.Errorf("expected phase %s, got %s", PhaseDataFetched, st.Phase)
	}
	if !st.Subscribed() || st.Record.Position != 4200 {
		t.Errorf("expected record, got %+v", st.Record)
	}
	if st.FID() != 1234 {
		t.Errorf("expected fid 1234, got %d", st.FID())
	}
	if st.ID.String() == "" {
		t.Error("expected a session id")
	}
}

func TestStart_FallbackIdentityIsFetched(t *testing.T) {
	fetcher := &recordingFetcher{lookup: api.Lookup{Outcome: api.OutcomeFailed}}

	st := newTestSequencer(fetcher).Start(context.Background(), &frame.StaticHost{Err: frame.ErrNoContext})

	if len(fetcher.calls) != 1 || fetcher.calls[0] != identity.DefaultFallbackFID {
		t.Fatalf("expected lookup for fallback fid, got %v", fetcher.calls)
	}
	if st.Subscribed() {
		t.Error("expected no record")
	}
}

func TestStartWithFID(t *testing.T) {
	fetcher := &recordingFetcher{lookup: api.Lookup{Outcome: api.OutcomeNoRecord}}

	st := newTestSequencer(fetcher).StartWithFID(context.Background(), 77)
	if st.FID() != 77 || fetcher.calls[0] != 77 {
		t.Errorf("expected fid 77, got %d / %v", st.FID(), fetcher.calls)
	}
	if st.Outcome != api.OutcomeNoRecord {
		t.Errorf("expected no_record outcome, got %s", st.Outcome)
	}
}

func TestRendered_DoesNotMutateOriginal(t *testing.T) {
	st := State{Phase: PhaseDataFetched}
	r := st.Rendered()
	if r.Phase != PhaseRendered || st.Phase != PhaseDataFetched {
		t.Errorf("unexpected phases: %s / %s", r.Phase, st.Phase)
	}
}
