package types

// Stage represents the kanban workflow state of an incident's resolution
type Stage string

const (
	StagePending    Stage = "pending"
	StageInProgress Stage = "in_progress"
	StageResolved   Stage = "resolved"
)

// Stages lists all workflow stages in fixed board column order
func Stages() []Stage {
	return []Stage{StagePending, StageInProgress, StageResolved}
}

// String returns the string representation of the stage
func (s Stage) String() string {
	return string(s)
}

// IsValid checks if the stage is valid
func (s Stage) IsValid() bool {
	switch s {
	case StagePending, StageInProgress, StageResolved:
		return true
	default:
		return false
	}
}
