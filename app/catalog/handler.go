package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/samber/lo"

	"github.com/mytheresa/orders-report/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

type ProductProvider interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

// Register mounts the product routes on mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /products", h.HandleGet)
	mux.HandleFunc("GET /products/{id}", h.HandleGetProduct)
}

// HandleGet lists the stored products, optionally narrowed to one ?category=.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if category != "" && !lo.Contains(models.Categories(), category) {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	res, err := h.repo.GetAllProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get products")
		return
	}
	if category != "" {
		res = lo.Filter(res, func(p models.Product, _ int) bool { return p.Category == category })
	}

	products := lo.Map(res, func(p models.Product, _ int) Product { return toProduct(p) })
	writeJSON(w, http.StatusOK, Response{Total: len(products), Products: products})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.repo.GetByID(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, toProduct(*product))
}

func toProduct(p models.Product) Product {
	return Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: string(p.Category),
		Price:    p.Price.InexactFloat64(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
