package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Roselynepj1/Flowerpower/pkg/httputil"
	"github.com/Roselynepj1/Flowerpower/pkg/validator"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
)

// checkoutItemsResponse is returned by the item mutation endpoints.
type checkoutItemsResponse struct {
	Items     []domain.CheckoutLineItem `json:"items"`
	ItemCount int                       `json:"item_count"`
	Total     decimal.Decimal           `json:"total"`
}

func newCheckoutItemsResponse(items []domain.CheckoutLineItem) checkoutItemsResponse {
	if items == nil {
		items = []domain.CheckoutLineItem{}
	}
	return checkoutItemsResponse{
		Items:     items,
		ItemCount: domain.ItemCount(items),
		Total:     domain.TotalAmount(items),
	}
}

// GetCheckout handles GET /api/v1/checkout.
func (h *StorefrontHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, err := h.service.GetCheckout(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, checkout)
}

// AddItem handles POST /api/v1/checkout/items.
func (h *StorefrontHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var input service.AddItemInput
	if err := validator.DecodeAndValidate(r, &input); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	items, err := h.service.AddItem(r.Context(), shopperID(r), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, newCheckoutItemsResponse(items))
}

// RemoveItem handles DELETE /api/v1/checkout/items/{productId}.
func (h *StorefrontHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "productId")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	items, err := h.service.RemoveItem(r.Context(), shopperID(r), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, newCheckoutItemsResponse(items))
}

// ClearCheckout handles DELETE /api/v1/checkout.
func (h *StorefrontHandler) ClearCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCheckout(r.Context(), shopperID(r)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Badge handles GET /api/v1/checkout/badge.
func (h *StorefrontHandler) Badge(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Badge(r.Context(), shopperID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]int{"item_count": count})
}
