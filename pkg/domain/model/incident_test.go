package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
)

func TestWhen(t *testing.T) {
	cases := []struct {
		name     string
		dateTime string
		ok       bool
	}{
		{"RFC3339", "2025-06-15T10:30:00Z", true},
		{"no timezone", "2025-06-15T10:30:00", true},
		{"space separated", "2025-06-15 10:30:00", true},
		{"date only", "2025-06-15", true},
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"garbage", "not a date", false},
		{"partial", "2025-06", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x := &model.Incident{ID: "1", DateTime: tc.dateTime}
			when, ok := x.When()
			gt.Equal(t, tc.ok, ok)
			if ok {
				gt.Equal(t, 2025, when.Year())
				gt.Equal(t, 6, int(when.Month()))
				gt.Equal(t, 15, when.Day())
			}
		})
	}
}

func TestNormalizeSeverity(t *testing.T) {
	gt.Equal(t, "High", model.NormalizeSeverity("high"))
	gt.Equal(t, "High", model.NormalizeSeverity("HIGH"))
	gt.Equal(t, "High", model.NormalizeSeverity("High"))
	gt.Equal(t, "Medium", model.NormalizeSeverity("  medium  "))
	gt.Equal(t, "Critical", model.NormalizeSeverity("critical"))
	gt.Equal(t, "", model.NormalizeSeverity(""))
}

func TestNormalizeCategory(t *testing.T) {
	gt.Equal(t, "Unsafe Act", model.NormalizeCategory("unsafe act"))
	gt.Equal(t, "Unsafe Act", model.NormalizeCategory("UNSAFE ACT"))
	gt.Equal(t, "Unsafe Act", model.NormalizeCategory("unsafe  act"))
	gt.Equal(t, "Unsafe Act", model.NormalizeCategory("  Unsafe Act  "))
	gt.Equal(t, "Near Miss", model.NormalizeCategory("near miss"))
	gt.Equal(t, "", model.NormalizeCategory("   "))
}

func TestGroupingKeys(t *testing.T) {
	t.Run("present values", func(t *testing.T) {
		x := &model.Incident{
			ID:         "1",
			Location:   "Warehouse A",
			Category:   "unsafe condition",
			ReportedBy: "jlopez",
		}
		gt.Equal(t, "Warehouse A", x.LocationKey())
		gt.Equal(t, "Unsafe Condition", x.CategoryKey())
		gt.Equal(t, "jlopez", x.ReporterKey())
	})

	t.Run("missing values group under Unknown", func(t *testing.T) {
		x := &model.Incident{ID: "2"}
		gt.Equal(t, model.UnknownLabel, x.LocationKey())
		gt.Equal(t, model.UnknownLabel, x.CategoryKey())
		gt.Equal(t, model.UnknownLabel, x.ReporterKey())
	})
}

func TestFieldsCoverEveryColumn(t *testing.T) {
	x := &model.Incident{
		ID:              "42",
		DateTime:        "2025-06-15",
		Location:        "Dock 3",
		HazardType:      "Slip",
		Department:      "Logistics",
		Severity:        "Low",
		Description:     "wet floor",
		ImmediateAction: "mopped up",
		Category:        "Unsafe Condition",
		ReportedBy:      "asmith",
	}
	fields := x.Fields()
	gt.Equal(t, 10, len(fields))
	gt.Equal(t, "42", fields[0])
	gt.Equal(t, "asmith", fields[9])
}
