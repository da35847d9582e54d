package handler

import (
	"net/http"

	"cafe-pos/internal/service"

	"github.com/rs/zerolog"
)

// ReportHandler handles report requests.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("handler", "report").Logger(),
	}
}

// Omset handles GET /api/reports/omset requests.
func (h *ReportHandler) Omset(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Omset(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch omset", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// SalesChart handles GET /api/reports/sales-chart requests.
func (h *ReportHandler) SalesChart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.SalesChart(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch sales chart", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// TopProducts handles GET /api/reports/top-products requests.
func (h *ReportHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.TopProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch top products", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// LowStock handles GET /api/reports/low-stock requests.
func (h *ReportHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch low stock items", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
