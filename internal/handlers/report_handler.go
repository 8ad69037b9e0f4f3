package handlers

import (
	"fmt"
	"net/http"

	"github.com/bancofortis/backend/internal/services"
	"github.com/bancofortis/backend/internal/views"
)

const defaultReportUserID = 1

type ReportHandler struct {
	reports ReportBuilder
	views   *views.Renderer
}

func NewReportHandler(reports ReportBuilder, v *views.Renderer) *ReportHandler {
	return &ReportHandler{reports: reports, views: v}
}

// Report shows the report of ?user_id, or of user 1 when it is absent.
func (h *ReportHandler) Report(w http.ResponseWriter, r *http.Request) {
	userID := int64(defaultReportUserID)
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			errorPage(w, h.views, fmt.Errorf("%w: invalid user_id %q", services.ErrInvalidInput, raw), "/users")
			return
		}
		userID = id
	}

	report, err := h.reports.Build(r.Context(), userID)
	if err != nil {
		errorPage(w, h.views, err, "/users")
		return
	}
	page(w, h.views, http.StatusOK, "report", report)
}
