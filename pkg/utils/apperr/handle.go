package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle reports an error that has no caller left to return to, such as a
// failure inside the background incident fetch.
func Handle(ctx context.Context, err error) {
	logger := ctxlog.From(ctx)
	logger.Error("application error", "error", err)
}
