package model

import (
	"strings"
	"time"
	"unicode"

	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// UnknownLabel is the grouping key substituted for records that are missing
// an optional free-text field.
const UnknownLabel = "Unknown"

// Incident represents one reported safety/hazard event record fetched from
// the upstream API. All fields except ID are free text and may be absent;
// aggregation substitutes defaults instead of failing.
type Incident struct {
	ID              types.IncidentID `json:"id"`
	DateTime        string           `json:"date_time,omitempty"`
	Location        string           `json:"location,omitempty"`
	HazardType      string           `json:"hazard_type,omitempty"`
	Department      string           `json:"department,omitempty"`
	Severity        string           `json:"severity,omitempty"`
	Description     string           `json:"description,omitempty"`
	ImmediateAction string           `json:"immediate_action,omitempty"`
	Category        string           `json:"category,omitempty"`
	ReportedBy      string           `json:"reported_by,omitempty"`
}

// dateTimeLayouts are the accepted date_time formats, tried in order.
// Unparsable values are treated the same as missing ones.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// When parses the record's date_time. The second return value is false when
// the field is absent or unparsable; such records are excluded from month
// bucketing and fail date-range filters, but still count everywhere else.
func (x *Incident) When() (time.Time, bool) {
	s := strings.TrimSpace(x.DateTime)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Fields returns the string form of every field for free-text search
func (x *Incident) Fields() []string {
	return []string{
		x.ID.String(),
		x.DateTime,
		x.Location,
		x.HazardType,
		x.Department,
		x.Severity,
		x.Description,
		x.ImmediateAction,
		x.Category,
		x.ReportedBy,
	}
}

// LocationKey returns the grouping key for the location dimension (raw value)
func (x *Incident) LocationKey() string {
	if x.Location == "" {
		return UnknownLabel
	}
	return x.Location
}

// CategoryKey returns the normalized grouping key for the category dimension
func (x *Incident) CategoryKey() string {
	if strings.TrimSpace(x.Category) == "" {
		return UnknownLabel
	}
	return NormalizeCategory(x.Category)
}

// ReporterKey returns the grouping key for the reporter dimension (raw value)
func (x *Incident) ReporterKey() string {
	if x.ReportedBy == "" {
		return UnknownLabel
	}
	return x.ReportedBy
}

// NormalizeSeverity converts case-inconsistent severity labels to Title Case
// ("high", "High" and "HIGH" all become "High")
func NormalizeSeverity(s string) string {
	return titleToken(strings.TrimSpace(s))
}

// NormalizeCategory splits on whitespace, Title-Cases each token and rejoins
// with single spaces ("unsafe  act" becomes "Unsafe Act")
func NormalizeCategory(s string) string {
	tokens := strings.Fields(s)
	for i, tok := range tokens {
		tokens[i] = titleToken(tok)
	}
	return strings.Join(tokens, " ")
}

// titleToken upper-cases the first rune and lower-cases the rest
func titleToken(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CanonicalSeverities lists the fixed severity vocabulary in display order
func CanonicalSeverities() []string {
	return []string{"Low", "Medium", "High"}
}
