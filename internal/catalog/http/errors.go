package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aklatan/buklat/pkg/apierr"
)

// writeEntityError sends a taxonomy error as-is and degrades anything else to
// the generic 500 body, logging the original fault.
func writeEntityError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		log.Error(op+" failed", "err", err)
	}
	apierr.Write(w, err)
}
