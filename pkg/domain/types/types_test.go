package types_test

import (
	"encoding/json"
	"testing"

	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

func TestStageValidation(t *testing.T) {
	tests := []struct {
		name     string
		stage    types.Stage
		expected bool
	}{
		{"Valid pending", types.StagePending, true},
		{"Valid in_progress", types.StageInProgress, true},
		{"Valid resolved", types.StageResolved, true},
		{"Invalid empty", types.Stage(""), false},
		{"Invalid mixed case", types.Stage("Pending"), false},
		{"Invalid unknown", types.Stage("done"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.stage.IsValid()
			if result != tt.expected {
				t.Errorf("Stage(%q).IsValid() = %v, want %v", tt.stage, result, tt.expected)
			}
		})
	}
}

func TestStagesOrder(t *testing.T) {
	stages := types.Stages()
	if len(stages) != 3 {
		t.Fatalf("Stages() returned %d stages, want 3", len(stages))
	}
	want := []types.Stage{types.StagePending, types.StageInProgress, types.StageResolved}
	for i, s := range stages {
		if s != want[i] {
			t.Errorf("Stages()[%d] = %q, want %q", i, s, want[i])
		}
	}
}

func TestIncidentIDUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected types.IncidentID
		wantErr  bool
	}{
		{"String ID", `"inc-42"`, types.IncidentID("inc-42"), false},
		{"Numeric ID", `42`, types.IncidentID("42"), false},
		{"Float ID", `4.5`, types.IncidentID("4.5"), false},
		{"Invalid object", `{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id types.IncidentID
			err := json.Unmarshal([]byte(tt.raw), &id)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Unmarshal(%s) expected error, got %q", tt.raw, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s) unexpected error: %v", tt.raw, err)
			}
			if id != tt.expected {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.raw, id, tt.expected)
			}
		})
	}
}

func TestIncidentIDMarshal(t *testing.T) {
	data, err := json.Marshal(types.IncidentID("abc"))
	if err != nil {
		t.Fatalf("Marshal unexpected error: %v", err)
	}
	if string(data) != `"abc"` {
		t.Errorf("Marshal = %s, want %q", data, `"abc"`)
	}
}
