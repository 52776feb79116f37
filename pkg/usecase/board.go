package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/interfaces"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// Local cache keys, kept compatible with the original dashboard's browser
// storage entries.
const (
	cacheKeyStages = "incidentStatuses"
	cacheKeyNotes  = "incidentNotes"
)

// Board is the status overlay: a small owned mapping from incident ID to
// workflow stage and note, independent of the fetched data. It is loaded
// once at startup and written through to the local cache on every change.
// Cache failures degrade to defaults; they never surface to the caller.
type Board struct {
	kv    interfaces.KVStore
	views *model.ViewsConfig

	mu     sync.RWMutex
	stages map[types.IncidentID]types.Stage
	notes  map[types.IncidentID]string
}

// NewBoard creates the overlay and loads any cached state. A corrupt or
// unreadable cache entry is treated as empty.
func NewBoard(ctx context.Context, kv interfaces.KVStore, views *model.ViewsConfig) *Board {
	b := &Board{
		kv:     kv,
		views:  views,
		stages: make(map[types.IncidentID]types.Stage),
		notes:  make(map[types.IncidentID]string),
	}
	b.restore(ctx)
	return b
}

func (b *Board) restore(ctx context.Context) {
	logger := ctxlog.From(ctx)

	if raw, err := b.kv.Get(ctx, cacheKeyStages); err != nil {
		logger.Warn("Failed to read cached stages, starting empty", "error", err)
	} else if len(raw) > 0 {
		stages := make(map[types.IncidentID]types.Stage)
		if err := json.Unmarshal(raw, &stages); err != nil {
			logger.Warn("Cached stages are corrupt, starting empty", "error", err)
		} else {
			for id, stage := range stages {
				if stage.IsValid() {
					b.stages[id] = stage
				}
			}
		}
	}

	if raw, err := b.kv.Get(ctx, cacheKeyNotes); err != nil {
		logger.Warn("Failed to read cached notes, starting empty", "error", err)
	} else if len(raw) > 0 {
		notes := make(map[types.IncidentID]string)
		if err := json.Unmarshal(raw, &notes); err != nil {
			logger.Warn("Cached notes are corrupt, starting empty", "error", err)
		} else {
			b.notes = notes
		}
	}
}

// Stage returns the workflow stage for an incident, defaulting to pending
func (b *Board) Stage(id types.IncidentID) types.Stage {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if stage, ok := b.stages[id]; ok {
		return stage
	}
	return types.StagePending
}

// Note returns the free-text note for an incident (empty when unset)
func (b *Board) Note(id types.IncidentID) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.notes[id]
}

// SetStage updates the workflow stage and persists the whole mapping
func (b *Board) SetStage(ctx context.Context, id types.IncidentID, stage types.Stage) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID")
	}
	if !stage.IsValid() {
		return goerr.New("invalid stage", goerr.V("stage", stage))
	}

	b.mu.Lock()
	b.stages[id] = stage
	payload, err := json.Marshal(b.stages)
	b.mu.Unlock()
	if err != nil {
		return goerr.Wrap(err, "failed to encode stages")
	}

	b.persist(ctx, cacheKeyStages, payload)
	return nil
}

// Move updates the stage in response to a drag-to-column action. It is
// equivalent to SetStage.
func (b *Board) Move(ctx context.Context, id types.IncidentID, target types.Stage) error {
	return b.SetStage(ctx, id, target)
}

// SetNote updates the note and persists the whole mapping
func (b *Board) SetNote(ctx context.Context, id types.IncidentID, note string) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid incident ID")
	}

	b.mu.Lock()
	b.notes[id] = note
	payload, err := json.Marshal(b.notes)
	b.mu.Unlock()
	if err != nil {
		return goerr.Wrap(err, "failed to encode notes")
	}

	b.persist(ctx, cacheKeyNotes, payload)
	return nil
}

// persist writes through to the cache. Storage failures are logged and
// swallowed so a full or broken cache never blocks the board.
func (b *Board) persist(ctx context.Context, key string, payload []byte) {
	if err := b.kv.Set(ctx, key, payload); err != nil {
		ctxlog.From(ctx).Warn("Failed to persist board state",
			"key", key,
			"error", err,
		)
	}
}

// Columns partitions the incidents into the three kanban columns, merging
// each record with its overlay entry. Input order is preserved within a
// column, so passing the most-recent-first list keeps columns sorted.
func (b *Board) Columns(incidents []*model.Incident) []model.BoardColumn {
	return model.PartitionByStage(incidents, b.Stage, b.Note, b.views.LabelFor)
}
