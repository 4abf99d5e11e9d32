package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Roselynepj1/Flowerpower/pkg/logger"
)

// ShopperIDHeader lets API clients name their shopper explicitly.
const ShopperIDHeader = "X-Shopper-ID"

// ShopperConfig controls the anonymous shopper cookie.
type ShopperConfig struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// DefaultShopperConfig returns a 30 day, non-secure cookie named shopper_id.
func DefaultShopperConfig() ShopperConfig {
	return ShopperConfig{
		CookieName: "shopper_id",
		MaxAge:     30 * 24 * time.Hour,
	}
}

// Shopper resolves the anonymous shopper that owns the checkout. The id is
// taken from the X-Shopper-ID header, then from the shopper cookie; when
// neither carries a valid UUID a new one is issued as a cookie. The id is
// stored in the context via logger.WithShopperID.
func Shopper(cfg ShopperConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultShopperConfig().CookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := shopperFromRequest(r, cfg.CookieName)
			if !ok {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := logger.WithShopperID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func shopperFromRequest(r *http.Request, cookieName string) (string, bool) {
	if h := r.Header.Get(ShopperIDHeader); h != "" {
		if id, err := uuid.Parse(h); err == nil {
			return id.String(), true
		}
	}
	if c, err := r.Cookie(cookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String(), true
		}
	}
	return "", false
}
