package http

import (
	"net/http"

	"github.com/Roselynepj1/Flowerpower/pkg/httputil"
)

// ListProducts handles GET /api/v1/products.
func (h *StorefrontHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := ParseCriteria(r.URL.Query(), true)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.service.ListProducts(r.Context(), criteria)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

// PopularProducts handles GET /api/v1/products/popular.
func (h *StorefrontHandler) PopularProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.PopularProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

// SlideshowProducts handles GET /api/v1/products/slideshow.
func (h *StorefrontHandler) SlideshowProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.SlideshowProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *StorefrontHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, product)
}
