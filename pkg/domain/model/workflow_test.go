package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

func TestPartitionByStage(t *testing.T) {
	incidents := []*model.Incident{
		{ID: "a"},
		{ID: "b"},
		{ID: "c"},
		{ID: "d"},
	}
	stages := map[types.IncidentID]types.Stage{
		"b": types.StageInProgress,
		"c": types.StageResolved,
		"d": types.Stage("bogus"),
	}
	notes := map[types.IncidentID]string{
		"b": "waiting on parts",
	}

	stageOf := func(id types.IncidentID) types.Stage {
		if s, ok := stages[id]; ok {
			return s
		}
		return types.StagePending
	}
	noteOf := func(id types.IncidentID) string { return notes[id] }
	labelOf := func(s types.Stage) string { return s.String() }

	columns := model.PartitionByStage(incidents, stageOf, noteOf, labelOf)

	gt.Equal(t, 3, len(columns))
	gt.Equal(t, types.StagePending, columns[0].Stage)
	gt.Equal(t, types.StageInProgress, columns[1].Stage)
	gt.Equal(t, types.StageResolved, columns[2].Stage)

	// "a" defaults to pending, "d" has an unknown stage and falls back there
	gt.Equal(t, 2, len(columns[0].Cards))
	gt.Equal(t, types.IncidentID("a"), columns[0].Cards[0].Incident.ID)
	gt.Equal(t, types.IncidentID("d"), columns[0].Cards[1].Incident.ID)
	gt.Equal(t, types.StagePending, columns[0].Cards[1].Stage)

	gt.Equal(t, 1, len(columns[1].Cards))
	gt.Equal(t, "waiting on parts", columns[1].Cards[0].Note)

	gt.Equal(t, 1, len(columns[2].Cards))

	// Columns always partition the input
	total := 0
	for _, col := range columns {
		total += len(col.Cards)
	}
	gt.Equal(t, len(incidents), total)
}
