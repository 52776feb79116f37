package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// StageLabel maps a workflow stage to its display label on the board
type StageLabel struct {
	Stage types.Stage `yaml:"stage"`
	Label string      `yaml:"label"`
}

// ViewsConfig tunes the presentation surfaces. Missing values fall back to
// the defaults the dashboard has always used.
type ViewsConfig struct {
	TopReporters int          `yaml:"top_reporters"` // leaderboard size
	WindowDays   int          `yaml:"window_days"`   // trailing window for windowed series
	RecentLimit  int          `yaml:"recent_limit"`  // rows on the summary view
	StageLabels  []StageLabel `yaml:"stage_labels,omitempty"`
}

// DefaultViewsConfig returns the built-in view configuration
func DefaultViewsConfig() *ViewsConfig {
	return &ViewsConfig{
		TopReporters: 5,
		WindowDays:   90,
		RecentLimit:  10,
		StageLabels: []StageLabel{
			{Stage: types.StagePending, Label: "Pending Review"},
			{Stage: types.StageInProgress, Label: "In Progress"},
			{Stage: types.StageResolved, Label: "Resolved"},
		},
	}
}

// ApplyDefaults fills unset values from the built-in configuration
func (c *ViewsConfig) ApplyDefaults() {
	def := DefaultViewsConfig()
	if c.TopReporters == 0 {
		c.TopReporters = def.TopReporters
	}
	if c.WindowDays == 0 {
		c.WindowDays = def.WindowDays
	}
	if c.RecentLimit == 0 {
		c.RecentLimit = def.RecentLimit
	}
	if len(c.StageLabels) == 0 {
		c.StageLabels = def.StageLabels
	}
}

// Validate validates the view configuration
func (c *ViewsConfig) Validate() error {
	if c.TopReporters < 0 {
		return goerr.New("top_reporters must not be negative",
			goerr.V("top_reporters", c.TopReporters))
	}
	if c.WindowDays < 0 {
		return goerr.New("window_days must not be negative",
			goerr.V("window_days", c.WindowDays))
	}
	if c.RecentLimit < 0 {
		return goerr.New("recent_limit must not be negative",
			goerr.V("recent_limit", c.RecentLimit))
	}
	for i, sl := range c.StageLabels {
		if !sl.Stage.IsValid() {
			return goerr.New("invalid stage in stage_labels",
				goerr.V("index", i),
				goerr.V("stage", sl.Stage))
		}
		if sl.Label == "" {
			return goerr.New("stage label is required",
				goerr.V("index", i),
				goerr.V("stage", sl.Stage))
		}
	}
	return nil
}

// LabelFor returns the display label for a stage, falling back to the raw
// stage name when unconfigured
func (c *ViewsConfig) LabelFor(stage types.Stage) string {
	for _, sl := range c.StageLabels {
		if sl.Stage == stage {
			return sl.Label
		}
	}
	return stage.String()
}
