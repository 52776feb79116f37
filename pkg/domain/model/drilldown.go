package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// FilterRequest is the cross-view navigation message: selecting a chart
// segment on the analytics surface produces one of these, and the table
// surface applies it to its criteria. It is an explicit value, never shared
// state between the surfaces.
type FilterRequest struct {
	Dimension types.Dimension `json:"dimension"`
	Value     string          `json:"value"`
}

// Validate validates the filter request
func (r *FilterRequest) Validate() error {
	if !r.Dimension.IsValid() {
		return goerr.New("invalid drill-down dimension",
			goerr.V("dimension", r.Dimension))
	}
	if r.Value == "" {
		return goerr.New("drill-down value is required")
	}
	return nil
}

// ApplyTo maps the request onto table criteria. The page resets to 1 through
// the criteria's own With* semantics.
func (r *FilterRequest) ApplyTo(c Criteria) (Criteria, error) {
	if err := r.Validate(); err != nil {
		return c, err
	}

	switch r.Dimension {
	case types.DimensionSeverity:
		return c.WithSeverity(r.Value), nil
	case types.DimensionCategory:
		return c.WithCategory(r.Value), nil
	case types.DimensionLocation:
		return c.WithLocation(r.Value), nil
	case types.DimensionReporter:
		return c.WithSearch(r.Value), nil
	case types.DimensionMonth:
		first, err := time.Parse("Jan 2006", r.Value)
		if err != nil {
			return c, goerr.Wrap(err, "invalid month drill-down value",
				goerr.V("value", r.Value))
		}
		last := first.AddDate(0, 1, -1)
		return c.WithDateRange(first, last), nil
	default:
		return c, goerr.New("unsupported drill-down dimension",
			goerr.V("dimension", r.Dimension))
	}
}
