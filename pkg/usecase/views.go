package usecase

import (
	"time"

	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// Views assembles the JSON payloads for the three presentation surfaces.
// All derivation goes through the pure aggregation functions in the model
// package; this type only decides which input set each call receives.
type Views struct {
	store *Store
	board *Board
	cfg   *model.ViewsConfig
	now   func() time.Time
}

// NewViews creates the view assembler
func NewViews(store *Store, board *Board, cfg *model.ViewsConfig) *Views {
	return &Views{
		store: store,
		board: board,
		cfg:   cfg,
		now:   time.Now,
	}
}

// StoreMeta reports the fetch lifecycle state alongside every view
type StoreMeta struct {
	Status     types.StoreState `json:"status"`
	Message    string           `json:"message,omitempty"`
	LastSynced *time.Time       `json:"last_synced,omitempty"`
}

// Segment is one chart bucket plus the cross-view drill-down message a
// client sends to the table surface when the segment is selected.
type Segment struct {
	Label     string               `json:"label"`
	Count     int                  `json:"count"`
	Drilldown *model.FilterRequest `json:"drilldown,omitempty"`
}

// TablePage is the data/filter view payload
type TablePage struct {
	Meta       StoreMeta         `json:"meta"`
	Incidents  []*model.Incident `json:"incidents"`
	Total      int               `json:"total"`
	Filtered   int               `json:"filtered"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	PageSize   int               `json:"page_size"`
	Categories []string          `json:"categories"`
	Locations  []string          `json:"locations"`
}

// AnalyticsView is the chart surface payload. The location, month and
// category series are restricted to the trailing window; the severity
// breakdown and the reporter leaderboard cover the full set. The asymmetry
// is deliberate and the two input sets are threaded explicitly.
type AnalyticsView struct {
	Meta          StoreMeta `json:"meta"`
	WindowDays    int       `json:"window_days"`
	Total         int       `json:"total"`
	WindowedTotal int       `json:"windowed_total"`
	ByLocation    []Segment `json:"by_location"`
	ByMonth       []Segment `json:"by_month"`
	BySeverity    []Segment `json:"by_severity"`
	ByCategory    []Segment `json:"by_category"`
	TopReporters  []Segment `json:"top_reporters"`
}

// SummaryView is the landing dashboard payload
type SummaryView struct {
	Meta         StoreMeta          `json:"meta"`
	Total        int                `json:"total"`
	HighSeverity int                `json:"high_severity"`
	UnsafeActs   int                `json:"unsafe_acts"`
	BySeverity   []model.CountItem  `json:"by_severity"`
	ByCategory   []model.CountItem  `json:"by_category"`
	Recent       []*model.Incident  `json:"recent"`
}

// BoardView is the kanban surface payload
type BoardView struct {
	Meta    StoreMeta           `json:"meta"`
	Columns []model.BoardColumn `json:"columns"`
}

func (v *Views) meta(snap Snapshot) StoreMeta {
	meta := StoreMeta{
		Status:  snap.State,
		Message: snap.Message,
	}
	if !snap.LastSynced.IsZero() {
		synced := snap.LastSynced
		meta.LastSynced = &synced
	}
	return meta
}

// Table derives the filtered, sorted, paginated table page
func (v *Views) Table(criteria model.Criteria) TablePage {
	snap := v.store.Snapshot()

	sorted := model.SortRecentFirst(snap.Incidents)
	filtered := model.Filter(sorted, criteria)

	return TablePage{
		Meta:       v.meta(snap),
		Incidents:  model.Page(filtered, criteria.Page),
		Total:      len(snap.Incidents),
		Filtered:   len(filtered),
		Page:       criteria.Page,
		TotalPages: model.TotalPages(len(filtered)),
		PageSize:   model.PageSize,
		Categories: model.DistinctValues(sorted, func(x *model.Incident) string { return x.Category }),
		Locations:  model.DistinctValues(sorted, func(x *model.Incident) string { return x.Location }),
	}
}

// Analytics derives all chart series
func (v *Views) Analytics() AnalyticsView {
	snap := v.store.Snapshot()

	all := snap.Incidents
	windowed := model.WithinWindow(all, v.now(), time.Duration(v.cfg.WindowDays)*24*time.Hour)

	return AnalyticsView{
		Meta:          v.meta(snap),
		WindowDays:    v.cfg.WindowDays,
		Total:         len(all),
		WindowedTotal: len(windowed),
		ByLocation:    segments(model.CountByLocation(windowed), types.DimensionLocation),
		ByMonth:       monthSegments(model.CountByMonth(windowed)),
		BySeverity:    segments(model.CountBySeverity(all), types.DimensionSeverity),
		ByCategory:    segments(model.CountByCategory(windowed), types.DimensionCategory),
		TopReporters:  segments(model.TopReporters(all, v.cfg.TopReporters), types.DimensionReporter),
	}
}

// Summary derives the landing dashboard cards
func (v *Views) Summary() SummaryView {
	snap := v.store.Snapshot()

	sorted := model.SortRecentFirst(snap.Incidents)

	high := 0
	unsafe := 0
	for _, x := range snap.Incidents {
		if model.NormalizeSeverity(x.Severity) == "High" {
			high++
		}
		if x.CategoryKey() == "Unsafe Act" {
			unsafe++
		}
	}

	recent := sorted
	if len(recent) > v.cfg.RecentLimit {
		recent = recent[:v.cfg.RecentLimit]
	}

	return SummaryView{
		Meta:         v.meta(snap),
		Total:        len(snap.Incidents),
		HighSeverity: high,
		UnsafeActs:   unsafe,
		BySeverity:   model.CountBySeverity(snap.Incidents),
		ByCategory:   model.CountByCategory(snap.Incidents),
		Recent:       recent,
	}
}

// Board derives the kanban columns from the merged incident and overlay sets
func (v *Views) Board() BoardView {
	snap := v.store.Snapshot()
	sorted := model.SortRecentFirst(snap.Incidents)

	return BoardView{
		Meta:    v.meta(snap),
		Columns: v.board.Columns(sorted),
	}
}

// ExportCSV renders the currently filtered set (full, not paginated) as CSV
// and returns the dated filename alongside the body.
func (v *Views) ExportCSV(criteria model.Criteria) (string, string) {
	snap := v.store.Snapshot()

	sorted := model.SortRecentFirst(snap.Incidents)
	filtered := model.Filter(sorted, criteria)

	return model.CSVFilename(v.now()), model.RenderCSV(filtered)
}

func segments(items []model.CountItem, dim types.Dimension) []Segment {
	out := make([]Segment, 0, len(items))
	for _, item := range items {
		seg := Segment{
			Label: item.Label,
			Count: item.Count,
		}
		// Reporter drill-downs go through free-text search, which cannot
		// express a missing field; the Unknown bucket stays display-only.
		// Location and category filters match their Unknown buckets directly.
		if dim != types.DimensionReporter || item.Label != model.UnknownLabel {
			seg.Drilldown = &model.FilterRequest{
				Dimension: dim,
				Value:     item.Label,
			}
		}
		out = append(out, seg)
	}
	return out
}

func monthSegments(buckets []model.MonthBucket) []Segment {
	out := make([]Segment, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Segment{
			Label: b.Label,
			Count: b.Count,
			Drilldown: &model.FilterRequest{
				Dimension: types.DimensionMonth,
				Value:     b.Label,
			},
		})
	}
	return out
}
