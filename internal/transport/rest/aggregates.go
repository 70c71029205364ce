package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/campus-jobs/internal/domain"
)

type aggregateService interface {
	GetAggregate(ctx context.Context, scope domain.AggregateScope, key uuid.UUID) (domain.AggregateSnapshot, error)
	RefreshAggregate(ctx context.Context, scope domain.AggregateScope, key *uuid.UUID) (domain.RefreshResult, error)
}

// AggregateHandler exposes projection reads and manual refreshes to admins.
type AggregateHandler struct {
	svc aggregateService
	log *slog.Logger
}

func NewAggregateHandler(svc aggregateService, logger *slog.Logger) *AggregateHandler {
	return &AggregateHandler{svc: svc, log: logger.With("handler", "aggregates")}
}

// Get handles GET /admin/aggregates/{scope}/{key}.
func (h *AggregateHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r.PathValue("scope"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	key, err := parseKey(r.PathValue("key"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	snap, err := h.svc.GetAggregate(r.Context(), scope, key)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Refresh handles POST /admin/aggregates/{scope}/refresh[?key=<uuid>].
func (h *AggregateHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScope(r.PathValue("scope"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var key *uuid.UUID
	if raw := r.URL.Query().Get("key"); raw != "" {
		k, err := parseKey(raw)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		key = &k
	}

	res, err := h.svc.RefreshAggregate(r.Context(), scope, key)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func parseScope(raw string) (domain.AggregateScope, error) {
	scope := domain.AggregateScope(raw)
	if !scope.IsValid() {
		return "", domain.NewValidationError("scope", fmt.Sprintf("unknown scope %q", raw))
	}
	return scope, nil
}

func parseKey(raw string) (uuid.UUID, error) {
	key, err := uuid.Parse(raw)
	if err != nil || key == uuid.Nil {
		return uuid.Nil, domain.NewValidationError("key", "must be a uuid")
	}
	return key, nil
}
