package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
)

// checkoutPath is where checkout form posts redirect to.
const checkoutPath = "/checkout"

// Home handles GET /.
func (h *StorefrontHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.NewPage(render.PageHome)
	if err != nil {
		h.writePageError(w, r, apperrors.Internal(err))
		return
	}
	if err := h.service.RenderHome(r.Context(), page, shopperID(r)); err != nil {
		h.writePageError(w, r, err)
		return
	}
	h.writePage(w, r, page, http.StatusOK)
}

// Catalog handles GET /products. Malformed filter values are ignored.
func (h *StorefrontHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	criteria, _ := ParseCriteria(r.URL.Query(), false)

	page, err := h.pages.NewPage(render.PageCatalog)
	if err != nil {
		h.writePageError(w, r, apperrors.Internal(err))
		return
	}
	if err := h.service.RenderPage(r.Context(), page, criteria, shopperID(r)); err != nil {
		h.writePageError(w, r, err)
		return
	}
	h.writePage(w, r, page, http.StatusOK)
}

// Product handles GET /products/{id}.
func (h *StorefrontHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writePageError(w, r, apperrors.NotFound("product", chi.URLParam(r, "id")))
		return
	}

	page, err := h.pages.NewPage(render.PageProduct)
	if err != nil {
		h.writePageError(w, r, apperrors.Internal(err))
		return
	}

	status := http.StatusOK
	if err := h.service.RenderProduct(r.Context(), page, id, shopperID(r)); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			h.writePageError(w, r, err)
			return
		}
		status = http.StatusNotFound
	}
	h.writePage(w, r, page, status)
}

// Checkout handles GET /checkout.
func (h *StorefrontHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.NewPage(render.PageCheckout)
	if err != nil {
		h.writePageError(w, r, apperrors.Internal(err))
		return
	}
	if err := h.service.RenderHome(r.Context(), page, shopperID(r)); err != nil {
		h.writePageError(w, r, err)
		return
	}
	h.writePage(w, r, page, http.StatusOK)
}

// AddItemForm handles POST /checkout/items from a product card form.
func (h *StorefrontHandler) AddItemForm(w http.ResponseWriter, r *http.Request) {
	id, err := formInt(r, "id")
	if err != nil {
		h.writePageError(w, r, err)
		return
	}
	qty := 1
	if r.PostFormValue("quantity") != "" {
		if qty, err = formInt(r, "quantity"); err != nil {
			h.writePageError(w, r, err)
			return
		}
	}

	input := service.AddItemInput{ProductID: id, Quantity: qty}
	if _, err := h.service.AddItem(r.Context(), shopperID(r), input); err != nil {
		h.writePageError(w, r, err)
		return
	}
	http.Redirect(w, r, checkoutPath, http.StatusSeeOther)
}

// RemoveItemForm handles POST /checkout/items/{id}/remove.
func (h *StorefrontHandler) RemoveItemForm(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writePageError(w, r, err)
		return
	}
	if _, err := h.service.RemoveItem(r.Context(), shopperID(r), id); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		h.writePageError(w, r, err)
		return
	}
	http.Redirect(w, r, checkoutPath, http.StatusSeeOther)
}

// ClearForm handles POST /checkout/clear.
func (h *StorefrontHandler) ClearForm(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCheckout(r.Context(), shopperID(r)); err != nil {
		h.writePageError(w, r, err)
		return
	}
	http.Redirect(w, r, checkoutPath, http.StatusSeeOther)
}
