package http

import (
	"net/http"
)

// NewRouter registers every endpoint behind the rate limiter.
func NewRouter(
	municipalities *MunicipalityHandler,
	savings *SavingsHandler,
	limiter *RateLimiter,
) http.Handler {
	mux := http.NewServeMux()

	routes := map[string]http.HandlerFunc{
		"/municipios":         municipalities.Collection,
		"/municipios/{clave}": municipalities.Get,
		"/ahorro/calcular":    savings.Calculate,
		"/ahorro/estimar":     savings.Estimate,
		"/ahorro/comparar":    savings.Compare,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, RateLimitMiddleware(limiter, handler))
	}

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}
