package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// fetchFailureMessage is the single user-visible message for any fetch
// failure; details go to the log only.
const fetchFailureMessage = "Failed to load incidents"

// Store owns the raw incident list and its fetch lifecycle. It is the single
// source of truth for the fetched data: one Load per page-load equivalent,
// no retry, no background refresh. All state changes are atomic replaces.
type Store struct {
	source interfaces.Source

	mu         sync.RWMutex
	state      types.StoreState
	incidents  []*model.Incident
	message    string
	lastSynced time.Time
	closed     bool
}

// Snapshot is an atomic view of the store for the presentation surfaces.
// Consumers must treat the incident records as read-only.
type Snapshot struct {
	State      types.StoreState
	Message    string
	Incidents  []*model.Incident
	LastSynced time.Time
}

// NewStore creates a new incident store in the loading state
func NewStore(source interfaces.Source) *Store {
	return &Store{
		source: source,
		state:  types.StoreStateLoading,
	}
}

// Load performs one fetch and atomically replaces the snapshot. On failure
// the store enters the error state with a generic message and an empty list.
// A response arriving after the owning context was cancelled or the store
// was closed is discarded without touching state.
func (s *Store) Load(ctx context.Context) error {
	s.setLoading()

	incidents, err := s.source.FetchIncidents(ctx)

	// Late-arriving result for a teardown context must not mutate state
	if ctx.Err() != nil {
		return goerr.Wrap(ctx.Err(), "incident fetch abandoned")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return goerr.New("incident store is closed")
	}

	if err != nil {
		ctxlog.From(ctx).Error("Incident fetch failed", "error", err)
		s.state = types.StoreStateError
		s.message = fetchFailureMessage
		s.incidents = nil
		return goerr.Wrap(err, "failed to load incidents")
	}

	s.state = types.StoreStateReady
	s.message = ""
	s.incidents = incidents
	s.lastSynced = time.Now()

	ctxlog.From(ctx).Info("Incident snapshot replaced", "count", len(incidents))
	return nil
}

// Refresh re-runs Load with identical semantics. It exists as the page
// reload analog for an explicit user action.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current atomic view. The slice is copied so later
// replaces never show up mid-iteration.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	incidents := make([]*model.Incident, len(s.incidents))
	copy(incidents, s.incidents)

	return Snapshot{
		State:      s.state,
		Message:    s.message,
		Incidents:  incidents,
		LastSynced: s.lastSynced,
	}
}

// Close marks the store as torn down; any in-flight Load result is dropped
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = types.StoreStateLoading
}
