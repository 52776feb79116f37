package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// MatchAll is the filter value that matches every record
const MatchAll = "All"

// Criteria holds the user-chosen filter and page parameters for the table
// view. It is an immutable value: every With* mutation returns a new
// Criteria, and any change to a filter parameter resets the page to 1.
type Criteria struct {
	Search   string
	Severity string
	Category string
	Location string
	From     time.Time // zero means no lower bound
	To       time.Time // zero means no upper bound
	Page     int
}

// NewCriteria returns the default criteria (no filters, page 1)
func NewCriteria() Criteria {
	return Criteria{Page: 1}
}

// WithSearch returns a copy with the search text replaced
func (c Criteria) WithSearch(text string) Criteria {
	c.Search = text
	c.Page = 1
	return c
}

// WithSeverity returns a copy with the severity filter replaced
func (c Criteria) WithSeverity(severity string) Criteria {
	c.Severity = severity
	c.Page = 1
	return c
}

// WithCategory returns a copy with the category filter replaced
func (c Criteria) WithCategory(category string) Criteria {
	c.Category = category
	c.Page = 1
	return c
}

// WithLocation returns a copy with the location filter replaced
func (c Criteria) WithLocation(location string) Criteria {
	c.Location = location
	c.Page = 1
	return c
}

// WithDateRange returns a copy with the inclusive date range replaced.
// Either bound may be zero to leave that side open.
func (c Criteria) WithDateRange(from, to time.Time) Criteria {
	c.From = from
	c.To = to
	c.Page = 1
	return c
}

// WithPage returns a copy positioned on the given page (minimum 1)
func (c Criteria) WithPage(page int) Criteria {
	if page < 1 {
		page = 1
	}
	c.Page = page
	return c
}

// HasDateBound reports whether either side of the date range is set
func (c Criteria) HasDateBound() bool {
	return !c.From.IsZero() || !c.To.IsZero()
}

// Matches reports whether the incident passes every active filter
func (c Criteria) Matches(x *Incident) bool {
	return c.matchesSearch(x) &&
		c.matchesSeverity(x) &&
		c.matchesCategory(x) &&
		c.matchesLocation(x) &&
		c.matchesDateRange(x)
}

func (c Criteria) matchesSearch(x *Incident) bool {
	if c.Search == "" {
		return true
	}
	needle := strings.ToLower(c.Search)
	for _, field := range x.Fields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (c Criteria) matchesSeverity(x *Incident) bool {
	if c.Severity == "" || c.Severity == MatchAll {
		return true
	}
	return NormalizeSeverity(x.Severity) == NormalizeSeverity(c.Severity)
}

// matchesCategory compares grouping keys, so filtering on "Unknown" selects
// the records whose category is missing. Chart segments drill down with their
// own label and the Unknown bucket must round-trip like any other.
func (c Criteria) matchesCategory(x *Incident) bool {
	if c.Category == "" || c.Category == MatchAll {
		return true
	}
	return x.CategoryKey() == NormalizeCategory(c.Category)
}

// matchesLocation is an exact match on the grouping key: raw values compare
// verbatim, and "Unknown" selects the records with no location.
func (c Criteria) matchesLocation(x *Incident) bool {
	if c.Location == "" || c.Location == MatchAll {
		return true
	}
	return x.LocationKey() == c.Location
}

func (c Criteria) matchesDateRange(x *Incident) bool {
	if !c.HasDateBound() {
		return true
	}
	when, ok := x.When()
	if !ok {
		// Records without a usable date_time fail the filter whenever a
		// bound is set.
		return false
	}
	if !c.From.IsZero() && when.Before(StartOfDay(c.From)) {
		return false
	}
	if !c.To.IsZero() && when.After(EndOfDay(c.To)) {
		return false
	}
	return true
}

// StartOfDay truncates t to 00:00:00.000 in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay advances t to 23:59:59.999 in its own location
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// ParseDay parses a "YYYY-MM-DD" query value. An empty value yields the zero
// time (bound unset).
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid date", goerr.V("value", s))
	}
	return t, nil
}
