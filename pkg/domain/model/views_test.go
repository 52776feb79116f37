package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

func TestViewsConfigDefaults(t *testing.T) {
	cfg := model.DefaultViewsConfig()
	gt.Equal(t, 5, cfg.TopReporters)
	gt.Equal(t, 90, cfg.WindowDays)
	gt.Equal(t, 10, cfg.RecentLimit)
	gt.Equal(t, "Pending Review", cfg.LabelFor(types.StagePending))
	gt.Equal(t, "In Progress", cfg.LabelFor(types.StageInProgress))
	gt.Equal(t, "Resolved", cfg.LabelFor(types.StageResolved))
}

func TestViewsConfigApplyDefaults(t *testing.T) {
	cfg := &model.ViewsConfig{WindowDays: 30}
	cfg.ApplyDefaults()
	gt.Equal(t, 30, cfg.WindowDays)
	gt.Equal(t, 5, cfg.TopReporters)
	gt.Equal(t, 10, cfg.RecentLimit)
	gt.NoError(t, cfg.Validate())
}

func TestViewsConfigValidate(t *testing.T) {
	bad := &model.ViewsConfig{TopReporters: -1}
	gt.Error(t, bad.Validate())

	badStage := &model.ViewsConfig{
		TopReporters: 5,
		WindowDays:   90,
		RecentLimit:  10,
		StageLabels:  []model.StageLabel{{Stage: types.Stage("bogus"), Label: "x"}},
	}
	gt.Error(t, badStage.Validate())

	emptyLabel := &model.ViewsConfig{
		TopReporters: 5,
		WindowDays:   90,
		RecentLimit:  10,
		StageLabels:  []model.StageLabel{{Stage: types.StagePending}},
	}
	gt.Error(t, emptyLabel.Validate())
}

func TestLabelForFallsBackToStageName(t *testing.T) {
	cfg := &model.ViewsConfig{}
	gt.Equal(t, "resolved", cfg.LabelFor(types.StageResolved))
}
