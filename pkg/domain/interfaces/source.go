package interfaces

import (
	"context"

	"github.com/safevoice-lab/safevoice/pkg/domain/model"
)

// Source fetches the incident collection from the upstream API. One call is
// one fetch; the source never retries or caches.
type Source interface {
	FetchIncidents(ctx context.Context) ([]*model.Incident, error)
}
