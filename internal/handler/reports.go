package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/platepos/api/internal/report"
	"github.com/platepos/api/internal/service"
)

// ReportServicer defines the service methods needed by report handlers.
// Satisfied by *service.ReportService; narrow interface for testability.
type ReportServicer interface {
	Revenue(ctx context.Context, timeframe string, now time.Time) (service.RevenueReport, error)
}

// ReportsHandler handles report endpoints.
type ReportsHandler struct {
	svc ReportServicer
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(svc ReportServicer) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// RegisterRoutes registers report endpoints on the given Chi router.
func (h *ReportsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/revenue", h.Revenue)
}

// --- Response types ---

type revenueReportResponse struct {
	Timeframe         string                  `json:"timeframe"`
	GeneratedAt       time.Time               `json:"generated_at"`
	TotalRevenue      string                  `json:"total_revenue"`
	TotalOrders       int                     `json:"total_orders"`
	AverageOrderValue string                  `json:"average_order_value"`
	Buckets           []revenueBucketResponse `json:"buckets"`
}

type revenueBucketResponse struct {
	Label   string `json:"label"`
	Revenue string `json:"revenue"`
}

// --- Handlers ---

// Revenue handles GET /reports/revenue?timeframe=today|week|month.
func (h *ReportsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	now, err := parseNow(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid now, use RFC 3339"})
		return
	}

	rep, err := h.svc.Revenue(r.Context(), parseTimeframe(r), now)
	if err != nil {
		if errors.Is(err, report.ErrInvalidTimeframe) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "timeframe must be today, week, or month"})
			return
		}
		log.Printf("ERROR: revenue report: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, toRevenueReportResponse(rep))
}

func toRevenueReportResponse(rep service.RevenueReport) revenueReportResponse {
	resp := revenueReportResponse{
		Timeframe:         rep.Timeframe,
		GeneratedAt:       rep.GeneratedAt,
		TotalRevenue:      money(rep.Summary.TotalRevenue),
		TotalOrders:       rep.Summary.TotalOrders,
		AverageOrderValue: money(rep.Summary.AverageOrderValue),
		Buckets:           make([]revenueBucketResponse, len(rep.Buckets)),
	}
	for i, b := range rep.Buckets {
		resp.Buckets[i] = revenueBucketResponse{Label: b.Label, Revenue: money(b.Revenue)}
	}
	return resp
}
