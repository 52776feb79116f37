package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/domain/model"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
	"github.com/safevoice-lab/safevoice/pkg/usecase"
)

type handler struct {
	store *usecase.Store
	board *usecase.Board
	views *usecase.Views
}

func newHandler(store *usecase.Store, board *usecase.Board, views *usecase.Views) *handler {
	return &handler{
		store: store,
		board: board,
		views: views,
	}
}

// criteriaFromQuery builds table criteria from query parameters. Every
// filter goes through a With* mutation so the page-reset rule holds; the
// explicit page parameter is applied last.
func criteriaFromQuery(r *http.Request) (model.Criteria, error) {
	q := r.URL.Query()
	c := model.NewCriteria()

	if v := q.Get("q"); v != "" {
		c = c.WithSearch(v)
	}
	if v := q.Get("severity"); v != "" {
		c = c.WithSeverity(v)
	}
	if v := q.Get("category"); v != "" {
		c = c.WithCategory(v)
	}
	if v := q.Get("location"); v != "" {
		c = c.WithLocation(v)
	}

	from, err := model.ParseDay(q.Get("from"))
	if err != nil {
		return c, goerr.Wrap(err, "invalid from parameter")
	}
	to, err := model.ParseDay(q.Get("to"))
	if err != nil {
		return c, goerr.Wrap(err, "invalid to parameter")
	}
	if !from.IsZero() || !to.IsZero() {
		c = c.WithDateRange(from, to)
	}

	if v := strings.TrimSpace(q.Get("page")); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return c, goerr.Wrap(err, "invalid page parameter", goerr.V("page", v))
		}
		c = c.WithPage(page)
	}

	return c, nil
}

// handleIncidents returns the raw snapshot with store lifecycle metadata
func (h *handler) handleIncidents(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	body := map[string]any{
		"status":    snap.State,
		"incidents": snap.Incidents,
	}
	if snap.Message != "" {
		body["message"] = snap.Message
	}
	if !snap.LastSynced.IsZero() {
		body["last_synced"] = snap.LastSynced
	}

	writeJSON(w, r, http.StatusOK, body)
}

func (h *handler) handleTable(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, h.views.Table(criteria))
}

func (h *handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.Analytics())
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.Summary())
}

func (h *handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.views.Board())
}

// handleRefresh re-fetches the incident collection on explicit user action
func (h *handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Refresh(r.Context()); err != nil {
		// The store already holds the error state; surface it with the
		// snapshot rather than failing the request.
		h.handleIncidents(w, r)
		return
	}
	h.handleIncidents(w, r)
}

// handleDrilldown resolves a cross-view filter request into a table page
func (h *handler) handleDrilldown(w http.ResponseWriter, r *http.Request) {
	var req model.FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid drill-down request"), http.StatusBadRequest)
		return
	}

	criteria, err := req.ApplyTo(model.NewCriteria())
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, h.views.Table(criteria))
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	filename, body := h.views.ExportCSV(criteria)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// stageRequest is the body for stage and move updates
type stageRequest struct {
	Stage types.Stage `json:"stage"`
}

// noteRequest is the body for note updates
type noteRequest struct {
	Note string `json:"note"`
}

func incidentIDParam(r *http.Request) types.IncidentID {
	return types.IncidentID(chi.URLParam(r, "incidentID"))
}

func (h *handler) handleSetStage(w http.ResponseWriter, r *http.Request) {
	h.updateStage(w, r, h.board.SetStage)
}

// handleMove is the drag-to-column analog; same effect as a stage update
func (h *handler) handleMove(w http.ResponseWriter, r *http.Request) {
	h.updateStage(w, r, h.board.Move)
}

func (h *handler) updateStage(w http.ResponseWriter, r *http.Request, update func(ctx context.Context, id types.IncidentID, stage types.Stage) error) {
	var req stageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid stage request"), http.StatusBadRequest)
		return
	}

	id := incidentIDParam(r)
	if err := update(r.Context(), id, req.Stage); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"id":    id,
		"stage": req.Stage,
	})
}

func (h *handler) handleSetNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, goerr.Wrap(err, "invalid note request"), http.StatusBadRequest)
		return
	}

	id := incidentIDParam(r)
	if err := h.board.SetNote(r.Context(), id, req.Note); err != nil {
		writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"id":   id,
		"note": req.Note,
	})
}
