package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
	"github.com/safevoice-lab/safevoice/pkg/usecase"
)

type stubSource struct {
	incidents []*model.Incident
	err       error
	calls     int
}

func (s *stubSource) FetchIncidents(ctx context.Context) ([]*model.Incident, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.incidents, nil
}

func TestStoreLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("starts in loading state", func(t *testing.T) {
		store := usecase.NewStore(&stubSource{})
		snap := store.Snapshot()
		gt.Equal(t, types.StoreStateLoading, snap.State)
		gt.Equal(t, 0, len(snap.Incidents))
	})

	t.Run("successful load becomes ready", func(t *testing.T) {
		source := &stubSource{incidents: []*model.Incident{
			{ID: "1", Severity: "High"},
			{ID: "2", Severity: "Low"},
		}}
		store := usecase.NewStore(source)
		gt.NoError(t, store.Load(ctx))

		snap := store.Snapshot()
		gt.Equal(t, types.StoreStateReady, snap.State)
		gt.Equal(t, 2, len(snap.Incidents))
		gt.Equal(t, "", snap.Message)
		gt.False(t, snap.LastSynced.IsZero())
	})

	t.Run("empty valid response is ready, not an error", func(t *testing.T) {
		store := usecase.NewStore(&stubSource{incidents: []*model.Incident{}})
		gt.NoError(t, store.Load(ctx))

		snap := store.Snapshot()
		gt.Equal(t, types.StoreStateReady, snap.State)
		gt.Equal(t, 0, len(snap.Incidents))
		gt.Equal(t, "", snap.Message)
	})

	t.Run("fetch failure becomes error with generic message", func(t *testing.T) {
		store := usecase.NewStore(&stubSource{err: goerr.New("connection refused")})
		gt.Error(t, store.Load(ctx))

		snap := store.Snapshot()
		gt.Equal(t, types.StoreStateError, snap.State)
		gt.Equal(t, "Failed to load incidents", snap.Message)
		gt.Equal(t, 0, len(snap.Incidents))
	})

	t.Run("refresh replaces a failed snapshot", func(t *testing.T) {
		source := &stubSource{err: goerr.New("boom")}
		store := usecase.NewStore(source)
		gt.Error(t, store.Load(ctx))

		source.err = nil
		source.incidents = []*model.Incident{{ID: "1"}}
		gt.NoError(t, store.Refresh(ctx))

		snap := store.Snapshot()
		gt.Equal(t, types.StoreStateReady, snap.State)
		gt.Equal(t, 1, len(snap.Incidents))
		gt.Equal(t, 2, source.calls)
	})
}

func TestStoreTeardownGuards(t *testing.T) {
	t.Run("cancelled context discards the result", func(t *testing.T) {
		source := &stubSource{incidents: []*model.Incident{{ID: "1"}}}
		store := usecase.NewStore(source)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gt.Error(t, store.Load(ctx))

		snap := store.Snapshot()
		gt.Equal(t, 0, len(snap.Incidents))
	})

	t.Run("closed store discards the result", func(t *testing.T) {
		source := &stubSource{incidents: []*model.Incident{{ID: "1"}}}
		store := usecase.NewStore(source)
		store.Close()

		gt.Error(t, store.Load(context.Background()))
		snap := store.Snapshot()
		gt.Equal(t, 0, len(snap.Incidents))
	})
}

func TestSnapshotIsolation(t *testing.T) {
	source := &stubSource{incidents: []*model.Incident{{ID: "1"}, {ID: "2"}}}
	store := usecase.NewStore(source)
	gt.NoError(t, store.Load(context.Background()))

	before := store.Snapshot()

	source.incidents = []*model.Incident{{ID: "3"}}
	gt.NoError(t, store.Refresh(context.Background()))

	// The earlier snapshot keeps its own copy
	gt.Equal(t, 2, len(before.Incidents))
	gt.Equal(t, types.IncidentID("1"), before.Incidents[0].ID)

	after := store.Snapshot()
	gt.Equal(t, 1, len(after.Incidents))
}
