package handlers

import (
	"net/http"

	"github.com/finbook/finbook-be/internal/services"
)

// SummaryHandler handles HTTP requests for the dashboard summary.
type SummaryHandler struct {
	service services.SummaryServiceProvider
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(service services.SummaryServiceProvider) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// Get handles the request to compute the caller's financial summary over an
// optional start/end date range.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Overview(userID, r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	if err != nil {
		serviceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}
