package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/infra/database"
)

type ReportHandler struct {
	Reports *database.ReportRepository
}

func NewReportHandler(reports *database.ReportRepository) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

func (h *ReportHandler) HandleCallReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.CallReportFilter{
		DatabaseName: q.Get("db_name"),
		SalesAgent:   q.Get("sales_agent"),
		DateFrom:     q.Get("date_from"),
		DateTo:       q.Get("date_to"),
		Status:       q.Get("status"),
	}

	rows, err := h.Reports.CallReport(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao gerar relatório")
		return
	}
	if rows == nil {
		rows = []*database.CallReportRow{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"report":  rows,
		"count":   len(rows),
	})
}

func (h *ReportHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Reports.Performance(r.Context(), q.Get("date_from"), q.Get("date_to"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro ao gerar relatório de desempenho")
		return
	}
	if report == nil {
		report = []*database.AgentPerformance{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"performance": report,
	})
}
