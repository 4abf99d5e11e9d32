package middleware

import "net/http"

// NoStore marks GET responses as uncacheable. Product listings are fetched
// fresh from the store on every request and must not be replayed by
// browsers or proxies.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			w.Header().Set("Cache-Control", "no-store")
		}
		next.ServeHTTP(w, r)
	})
}
