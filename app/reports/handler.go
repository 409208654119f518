package reports

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/mytheresa/orders-report/app/charts"
	"github.com/mytheresa/orders-report/models"
)

const maxBestsellerLimit = 100

type TopClientsResponse struct {
	Total   int      `json:"total"`
	Clients []Client `json:"clients"`
}

type Client struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	OrderCount int64  `json:"order_count"`
}

type BestsellersResponse struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	QuantitySold int64  `json:"quantity_sold"`
}

type ReportsHandler struct {
	repo ReportProvider
	bins int
}

func NewReportsHandler(r ReportProvider, histogramBins int) *ReportsHandler {
	return &ReportsHandler{
		repo: r,
		bins: histogramBins,
	}
}

// Register mounts the report and chart routes on mux.
func (h *ReportsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /reports/top-clients", h.HandleTopClients)
	mux.HandleFunc("GET /reports/bestsellers", h.HandleBestsellers)
	mux.HandleFunc("GET /charts/order-counts", h.HandleOrderCountsChart)
	mux.HandleFunc("GET /charts/bestsellers", h.HandleBestsellersChart)
}

func (h *ReportsHandler) HandleTopClients(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.TopClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get top clients")
		return
	}

	clients := lo.Map(rows, func(c models.ClientOrderCount, _ int) Client {
		return Client{Name: c.Name, Email: c.Email, OrderCount: c.OrderCount}
	})
	writeJSON(w, http.StatusOK, TopClientsResponse{Total: len(clients), Clients: clients})
}

func (h *ReportsHandler) HandleBestsellers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.Bestsellers(r.Context(), parseLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get bestsellers")
		return
	}

	products := lo.Map(rows, func(b models.Bestseller, _ int) Product {
		return Product{Name: b.Name, Category: string(b.Category), QuantitySold: b.QuantitySold}
	})
	writeJSON(w, http.StatusOK, BestsellersResponse{Total: len(products), Products: products})
}

func (h *ReportsHandler) HandleOrderCountsChart(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.TopClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get top clients")
		return
	}

	counts := lo.Map(rows, func(c models.ClientOrderCount, _ int) int64 { return c.OrderCount })
	writeHTML(w, func(out io.Writer) error {
		return charts.OrderCountHistogram(out, counts, h.bins)
	})
}

func (h *ReportsHandler) HandleBestsellersChart(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.Bestsellers(r.Context(), parseLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get bestsellers")
		return
	}

	names := lo.Map(rows, func(b models.Bestseller, _ int) string { return b.Name })
	quantities := lo.Map(rows, func(b models.Bestseller, _ int) int64 { return b.QuantitySold })
	writeHTML(w, func(out io.Writer) error {
		return charts.BestsellersLine(out, names, quantities)
	})
}

// parseLimit reads ?limit=, clamped to [1, 100]. Missing or invalid values
// fall back to the default bestseller limit.
func parseLimit(r *http.Request) int {
	limit := models.DefaultBestsellerLimit
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > maxBestsellerLimit {
				limit = maxBestsellerLimit
			} else {
				limit = l
			}
		}
	}
	return limit
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeHTML renders into a buffer first so a failed render still gets a clean 500.
func writeHTML(w http.ResponseWriter, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
