package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/httputil"
	"github.com/Roselynepj1/Flowerpower/pkg/logger"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
)

// StorefrontHandler serves the storefront pages and the JSON API.
type StorefrontHandler struct {
	service *service.StorefrontService
	pages   *render.Templates
	logger  *slog.Logger
}

// NewStorefrontHandler creates a new storefront HTTP handler.
func NewStorefrontHandler(svc *service.StorefrontService, pages *render.Templates, logger *slog.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		service: svc,
		pages:   pages,
		logger:  logger,
	}
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput(name + " must be a positive integer")
	}
	return id, nil
}

// writePage serializes page and writes it with status.
func (h *StorefrontHandler) writePage(w http.ResponseWriter, r *http.Request, page *render.Page, status int) {
	doc, err := page.HTML()
	if err != nil {
		h.writePageError(w, r, apperrors.Internal(err))
		return
	}
	httputil.WriteHTML(w, status, doc)
}

// writePageError answers a page request that could not be rendered at all.
// A request abandoned by the client gets no body.
func (h *StorefrontHandler) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		logger.FromContext(r.Context()).DebugContext(r.Context(), "page request canceled",
			slog.String("path", r.URL.Path),
		)
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "page render failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	http.Error(w, http.StatusText(status), status)
}

// formInt parses a positive integer form field.
func formInt(r *http.Request, name string) (int, error) {
	n, err := strconv.Atoi(r.PostFormValue(name))
	if err != nil || n <= 0 {
		return 0, apperrors.InvalidInput(name + " must be a positive integer")
	}
	return n, nil
}
