package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/cli/config"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

func TestViewsConfigureDefaults(t *testing.T) {
	var cfg config.Views
	views, err := cfg.Configure()
	gt.NoError(t, err)
	gt.Equal(t, 5, views.TopReporters)
	gt.Equal(t, 90, views.WindowDays)
}

func TestLoadViewsFromFile(t *testing.T) {
	t.Run("partial file gets defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "views.yml")
		gt.NoError(t, os.WriteFile(path, []byte("window_days: 30\n"), 0644))

		views, err := config.LoadViewsFromFile(path)
		gt.NoError(t, err)
		gt.Equal(t, 30, views.WindowDays)
		gt.Equal(t, 5, views.TopReporters)
		gt.Equal(t, "Pending Review", views.LabelFor(types.StagePending))
	})

	t.Run("custom stage labels", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "views.yml")
		content := `
stage_labels:
  - stage: pending
    label: Triage
  - stage: in_progress
    label: Working
  - stage: resolved
    label: Done
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644))

		views, err := config.LoadViewsFromFile(path)
		gt.NoError(t, err)
		gt.Equal(t, "Triage", views.LabelFor(types.StagePending))
		gt.Equal(t, "Done", views.LabelFor(types.StageResolved))
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := config.LoadViewsFromFile(filepath.Join(t.TempDir(), "nope.yml"))
		gt.Error(t, err)
	})

	t.Run("invalid YAML fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "views.yml")
		gt.NoError(t, os.WriteFile(path, []byte("window_days: [broken"), 0644))
		_, err := config.LoadViewsFromFile(path)
		gt.Error(t, err)
	})

	t.Run("invalid values fail", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "views.yml")
		gt.NoError(t, os.WriteFile(path, []byte("top_reporters: -2\n"), 0644))
		_, err := config.LoadViewsFromFile(path)
		gt.Error(t, err)
	})
}
