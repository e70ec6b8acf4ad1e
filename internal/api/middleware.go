package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// RouterConfig controls the middleware wrapped around the API.
type RouterConfig struct {
	APIKey         string
	AllowedOrigins []string
}

// NewRouter mounts h's routes behind API key auth and wraps them with
// recovery, request IDs, request logging and CORS. /healthz is never
// authenticated.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	h.RegisterRoutes(api)

	root := http.NewServeMux()
	root.Handle("/api/", APIKeyAuth(cfg.APIKey)(api))
	root.HandleFunc("GET /healthz", h.handleHealth)

	var handler http.Handler = root
	handler = CORS(cfg.AllowedOrigins)(handler)
	handler = RequestLogger(h.log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recoverer(handler)
	return handler
}

// CORS returns middleware that answers preflight requests and sets CORS
// headers for the given origins. No origins means any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	})
}

// APIKeyAuth returns middleware that validates the X-API-Key header.
// If key is empty, the middleware is a no-op (all requests pass through).
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") != key {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
