package model

import (
	"sort"
	"time"
)

// PageSize is the fixed number of table rows per page
const PageSize = 20

// Filter returns the incidents passing every active filter in the criteria,
// preserving input order. It never mutates the input.
func Filter(incidents []*Incident, c Criteria) []*Incident {
	result := make([]*Incident, 0, len(incidents))
	for _, x := range incidents {
		if c.Matches(x) {
			result = append(result, x)
		}
	}
	return result
}

// SortRecentFirst returns a new slice ordered most-recent-first by date_time.
// Records with a missing or unparsable date_time sort as oldest. The sort is
// stable, so ties keep their input order.
func SortRecentFirst(incidents []*Incident) []*Incident {
	result := make([]*Incident, len(incidents))
	copy(result, incidents)
	sort.SliceStable(result, func(i, j int) bool {
		ti, iok := result[i].When()
		tj, jok := result[j].When()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return result
}

// TotalPages computes ceil(count / PageSize) with a minimum of 1
func TotalPages(count int) int {
	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Page returns the 1-indexed contiguous page slice of the given list.
// Pages past the end are empty, never an error.
func Page(incidents []*Incident, page int) []*Incident {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(incidents) {
		return []*Incident{}
	}
	end := start + PageSize
	if end > len(incidents) {
		end = len(incidents)
	}
	return incidents[start:end]
}

// counter accumulates counts per key while remembering first-encountered
// key order, so descending sorts can break ties deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// descending returns the buckets sorted by count descending, ties broken by
// first-encountered key order.
func (c *counter) descending() []CountItem {
	items := make([]CountItem, 0, len(c.order))
	for _, key := range c.order {
		items = append(items, CountItem{Label: key, Count: c.counts[key]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	return items
}

// CountByLocation counts incidents per raw location value (missing values
// grouped under "Unknown"), sorted descending by count.
func CountByLocation(incidents []*Incident) []CountItem {
	c := newCounter()
	for _, x := range incidents {
		c.add(x.LocationKey())
	}
	return c.descending()
}

// CountByCategory counts incidents per normalized category key (missing
// values grouped under "Unknown"), sorted descending by count.
func CountByCategory(incidents []*Incident) []CountItem {
	c := newCounter()
	for _, x := range incidents {
		c.add(x.CategoryKey())
	}
	return c.descending()
}

// CountByMonth buckets incidents by (year, month) of date_time in
// chronological order. Records without a usable date_time are excluded.
func CountByMonth(incidents []*Incident) []MonthBucket {
	type ym struct {
		year  int
		month time.Month
	}
	counts := make(map[ym]int)
	for _, x := range incidents {
		when, ok := x.When()
		if !ok {
			continue
		}
		counts[ym{when.Year(), when.Month()}]++
	}

	keys := make([]ym, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	buckets := make([]MonthBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, MonthBucket{
			Label: time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006"),
			Year:  k.year,
			Month: k.month,
			Count: counts[k],
		})
	}
	return buckets
}

// CountBySeverity returns exactly three buckets in fixed order
// [Low, Medium, High], zero-filled when absent. Values outside the canonical
// vocabulary are not counted here (they still appear in totals and in the
// table view as literal strings).
func CountBySeverity(incidents []*Incident) []CountItem {
	counts := make(map[string]int, 3)
	for _, x := range incidents {
		counts[NormalizeSeverity(x.Severity)]++
	}
	items := make([]CountItem, 0, 3)
	for _, label := range CanonicalSeverities() {
		items = append(items, CountItem{Label: label, Count: counts[label]})
	}
	return items
}

// TopReporters counts incidents per raw reported_by value (missing values
// grouped under "Unknown"), sorted descending with first-encountered
// tie-break, truncated to n.
func TopReporters(incidents []*Incident, n int) []CountItem {
	c := newCounter()
	for _, x := range incidents {
		c.add(x.ReporterKey())
	}
	items := c.descending()
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// WithinWindow returns the incidents whose date_time falls inside the
// trailing window ending at now. Records without a usable date_time are
// excluded. The caller decides which aggregations receive the windowed set
// and which receive the full one; the engine never infers it.
func WithinWindow(incidents []*Incident, now time.Time, window time.Duration) []*Incident {
	cutoff := now.Add(-window)
	result := make([]*Incident, 0, len(incidents))
	for _, x := range incidents {
		when, ok := x.When()
		if !ok {
			continue
		}
		if when.Before(cutoff) || when.After(now) {
			continue
		}
		result = append(result, x)
	}
	return result
}

// DistinctValues collects the distinct non-empty values of one field across
// the incident list, sorted ascending. Used for filter dropdowns.
func DistinctValues(incidents []*Incident, field func(*Incident) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, x := range incidents {
		v := field(x)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
