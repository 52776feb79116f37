package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/safevoice-lab/safevoice/pkg/domain/types"
	"github.com/safevoice-lab/safevoice/pkg/service/upstream"
)

func TestFetchIncidents(t *testing.T) {
	ctx := context.Background()

	t.Run("decodes incident collection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Equal(t, r.URL.Path, "/api/incidents")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"incidents":[
				{"id":1,"severity":"HIGH","location":"Dock"},
				{"id":"inc-2","date_time":"2025-06-01T08:30:00Z"}
			]}`))
		}))
		defer srv.Close()

		incidents, err := upstream.New(srv.URL).FetchIncidents(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(incidents), 2)
		gt.Equal(t, incidents[0].ID, types.IncidentID("1"))
		gt.Equal(t, incidents[0].Severity, "HIGH")
		gt.Equal(t, incidents[1].ID, types.IncidentID("inc-2"))
	})

	t.Run("missing incidents field is a valid empty collection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		incidents, err := upstream.New(srv.URL).FetchIncidents(ctx)
		gt.NoError(t, err)
		gt.Equal(t, len(incidents), 0)
	})

	t.Run("non-2xx status is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := upstream.New(srv.URL).FetchIncidents(ctx)
		gt.Error(t, err)
	})

	t.Run("malformed JSON is a fetch failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"incidents": [`))
		}))
		defer srv.Close()

		_, err := upstream.New(srv.URL).FetchIncidents(ctx)
		gt.Error(t, err)
	})

	t.Run("unreachable upstream is a fetch failure", func(t *testing.T) {
		_, err := upstream.New("http://127.0.0.1:1").FetchIncidents(ctx)
		gt.Error(t, err)
	})
}

func TestSampleHandler(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(upstream.SampleHandler(upstream.SampleIncidents(now, 40)))
	defer srv.Close()

	incidents, err := upstream.New(srv.URL).FetchIncidents(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(incidents), 40)

	// IDs must be unique within one fetch
	seen := map[string]bool{}
	for _, x := range incidents {
		gt.False(t, seen[x.ID.String()])
		seen[x.ID.String()] = true
	}
}
