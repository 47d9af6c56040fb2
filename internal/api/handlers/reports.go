package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/elcoders/payment-portal/internal/api/httpx"
	"github.com/elcoders/payment-portal/internal/api/validate"
	"github.com/elcoders/payment-portal/internal/models"
	"github.com/elcoders/payment-portal/internal/services"
)

type ReportsHandler struct {
	Reports *services.ReportService
}

func NewReportsHandler(s *services.ReportService) *ReportsHandler {
	return &ReportsHandler{Reports: s}
}

// Submit accepts a client-side error report.
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var rep models.ErrorReport
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	if e := validate.Required("message", rep.Message); e != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", e.Msg, e)
		return
	}
	if rep.UserAgent == "" {
		rep.UserAgent = r.UserAgent()
	}
	h.Reports.Report(rep)
	w.WriteHeader(http.StatusAccepted)
}

func (h *ReportsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports := h.Reports.List()
	if reports == nil {
		reports = []models.ErrorReport{}
	}
	httpx.WriteJSON(w, http.StatusOK, reports)
}

func (h *ReportsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Reports.Clear()
	w.WriteHeader(http.StatusNoContent)
}
