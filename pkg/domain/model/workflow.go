package model

import (
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// WorkflowEntry is the per-incident resolution state owned by the status
// overlay: a workflow stage plus a free-text note. Entries exist only for
// incidents the user has touched; anything else defaults to pending.
type WorkflowEntry struct {
	Stage types.Stage `json:"stage"`
	Note  string      `json:"note,omitempty"`
}

// BoardCard is one incident merged with its overlay entry for the kanban view
type BoardCard struct {
	Incident *Incident   `json:"incident"`
	Stage    types.Stage `json:"stage"`
	Note     string      `json:"note,omitempty"`
}

// BoardColumn is one kanban column
type BoardColumn struct {
	Stage types.Stage `json:"stage"`
	Label string      `json:"label"`
	Cards []BoardCard `json:"cards"`
}

// PartitionByStage splits the incident list into exactly three columns in
// fixed order [Pending, InProgress, Resolved] using the given stage lookup.
// Within a column the input order is preserved, so the columns always
// partition the input with no overlap.
func PartitionByStage(incidents []*Incident, stageOf func(types.IncidentID) types.Stage, noteOf func(types.IncidentID) string, labelOf func(types.Stage) string) []BoardColumn {
	columns := make([]BoardColumn, 0, 3)
	byStage := make(map[types.Stage]int, 3)
	for i, stage := range types.Stages() {
		columns = append(columns, BoardColumn{
			Stage: stage,
			Label: labelOf(stage),
			Cards: []BoardCard{},
		})
		byStage[stage] = i
	}

	for _, x := range incidents {
		stage := stageOf(x.ID)
		idx, ok := byStage[stage]
		if !ok {
			// Unknown stages fall back to the pending column
			idx = byStage[types.StagePending]
			stage = types.StagePending
		}
		columns[idx].Cards = append(columns[idx].Cards, BoardCard{
			Incident: x,
			Stage:    stage,
			Note:     noteOf(x.ID),
		})
	}

	return columns
}
