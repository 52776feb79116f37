package types

import (
	"encoding/json"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// IncidentID represents an incident identifier. The upstream API emits it
// either as a JSON string or as a JSON number; both forms are accepted and
// kept as an opaque string.
type IncidentID string

// String returns the string representation
func (id IncidentID) String() string {
	return string(id)
}

// Validate checks if the incident ID is valid (non-empty)
func (id IncidentID) Validate() error {
	if id == "" {
		return goerr.New("incident ID cannot be empty")
	}
	return nil
}

// UnmarshalJSON accepts both string and numeric identifiers
func (id *IncidentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = IncidentID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = IncidentID(n.String())
		return nil
	}

	return goerr.New("incident ID must be a string or number",
		goerr.V("raw", string(data)))
}

// MarshalJSON emits the identifier as a JSON string
func (id IncidentID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(id))), nil
}

// StoreState represents the fetch lifecycle state of the incident store
type StoreState string

const (
	StoreStateLoading StoreState = "loading"
	StoreStateReady   StoreState = "ready"
	StoreStateError   StoreState = "error"
)

// String returns the string representation of the state
func (s StoreState) String() string {
	return string(s)
}

// Dimension identifies an aggregation axis for cross-view drill-down
// requests (a chart segment click becomes a table filter).
type Dimension string

const (
	DimensionSeverity Dimension = "severity"
	DimensionCategory Dimension = "category"
	DimensionLocation Dimension = "location"
	DimensionMonth    Dimension = "month"
	DimensionReporter Dimension = "reporter"
)

// String returns the string representation of the dimension
func (d Dimension) String() string {
	return string(d)
}

// IsValid checks if the dimension is valid
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionSeverity, DimensionCategory, DimensionLocation, DimensionMonth, DimensionReporter:
		return true
	default:
		return false
	}
}
