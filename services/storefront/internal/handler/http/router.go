package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Roselynepj1/Flowerpower/pkg/health"
	"github.com/Roselynepj1/Flowerpower/pkg/middleware"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/service"
)

const serviceName = "storefront"

// RouterOptions holds the optional middleware settings of the router.
type RouterOptions struct {
	PprofCIDRs  []string
	CORS        middleware.CORSConfig
	Shopper     middleware.ShopperConfig
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	svc *service.StorefrontService,
	pages *render.Templates,
	healthHandler *health.Handler,
	logger *slog.Logger,
	opts RouterOptions,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, opts.PprofCIDRs, logger)

	h := NewStorefrontHandler(svc, pages, logger)

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Handler)
		}
		r.Use(middleware.NoStore)
		r.Use(middleware.Shopper(opts.Shopper))
		r.Use(middleware.RequestLogger(logger))

		// Pages
		r.Get("/", h.Home)
		r.Get("/products", h.Catalog)
		r.Get("/products/{id}", h.Product)
		r.Get("/checkout", h.Checkout)
		r.Post("/checkout/items", h.AddItemForm)
		r.Post("/checkout/items/{id}/remove", h.RemoveItemForm)
		r.Post("/checkout/clear", h.ClearForm)

		// JSON API
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.CORS(opts.CORS))
			r.Use(ContentTypeJSON)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Get("/popular", h.PopularProducts)
				r.Get("/slideshow", h.SlideshowProducts)
				r.Get("/{id}", h.GetProduct)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", h.GetCheckout)
				r.Delete("/", h.ClearCheckout)
				r.Get("/badge", h.Badge)
				r.Post("/items", h.AddItem)
				r.Delete("/items/{productId}", h.RemoveItem)
			})
		})
	})

	return r
}
