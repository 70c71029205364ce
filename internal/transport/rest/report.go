package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/campus-jobs/internal/service/propagation"
)

type reporter interface {
	Report(ctx context.Context) (propagation.Report, error)
}

// ReportHandler serves the operational report. Mount it behind
// middleware.AdminOnly.
type ReportHandler struct {
	svc reporter
	log *slog.Logger
}

func NewReportHandler(svc reporter, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: logger.With("handler", "report")}
}

// Report handles GET /report.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Report(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
