package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
)

// Sample data pools. Severity and category spellings are deliberately
// inconsistent to exercise the normalization rules, and some records omit
// optional fields the way real submissions do.
var (
	sampleLocations = []string{
		"Warehouse A", "Loading Dock", "Assembly Line 2", "Chemical Storage",
		"Rooftop", "Parking Lot", "Boiler Room",
	}
	sampleSeverities = []string{"Low", "low", "Medium", "MEDIUM", "High", "high", "critical"}
	sampleCategories = []string{"Unsafe Act", "unsafe act", "Unsafe Condition", "near miss", "Near Miss"}
	sampleHazards    = []string{
		"Slippery floor", "Exposed wiring", "Blocked fire exit",
		"Missing guard rail", "Chemical spill", "Forklift near-miss",
	}
	sampleDepartments = []string{"Operations", "Maintenance", "Logistics", "Quality"}
	sampleReporters   = []string{"a.okafor", "m.tanaka", "s.novak", "j.rivera", "l.chen", "p.singh", ""}
)

// SampleIncidents generates n demo incidents spread over roughly the last
// half year, newest last. Every fifth record has no date_time and every
// seventh has no location, matching the gaps the dashboard must tolerate.
func SampleIncidents(now time.Time, n int) []*model.Incident {
	incidents := make([]*model.Incident, 0, n)
	for i := 0; i < n; i++ {
		x := &model.Incident{
			ID:         types.IncidentID(uuid.New().String()),
			DateTime:   now.Add(-time.Duration(i*31) * time.Hour).Format(time.RFC3339),
			Location:   sampleLocations[i%len(sampleLocations)],
			HazardType: sampleHazards[i%len(sampleHazards)],
			Department: sampleDepartments[i%len(sampleDepartments)],
			Severity:   sampleSeverities[i%len(sampleSeverities)],
			Description: fmt.Sprintf("%s reported near %s",
				sampleHazards[i%len(sampleHazards)], sampleLocations[i%len(sampleLocations)]),
			ImmediateAction: "Area cordoned off",
			Category:        sampleCategories[i%len(sampleCategories)],
			ReportedBy:      sampleReporters[i%len(sampleReporters)],
		}
		if i%5 == 4 {
			x.DateTime = ""
		}
		if i%7 == 6 {
			x.Location = ""
		}
		incidents = append(incidents, x)
	}
	return incidents
}

// SampleHandler serves the given incidents the way the real upstream does:
// GET /api/incidents returning {"incidents": [...]}
func SampleHandler(incidents []*model.Incident) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+incidentsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(fetchResponse{Incidents: incidents}); err != nil {
			ctxlog.From(r.Context()).Error("Failed to encode sample incidents", "error", err)
		}
	})
	return mux
}
