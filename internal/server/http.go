package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/philly/emitter/internal/adapters/rest"
	"github.com/philly/emitter/internal/adapters/rest/middleware"
	"github.com/philly/emitter/internal/platform/logger"
)

// NewHTTPServer creates and configures the HTTP server with all routes.
// jwtMiddleware may be nil, in which case emitting is open to everyone.
func NewHTTPServer(
	config Config,
	server *rest.Server,
	jwtMiddleware *middleware.JWTMiddleware,
	log logger.Logger,
) *http.Server {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	var emitGuard func(http.Handler) http.Handler
	if jwtMiddleware != nil {
		emitGuard = jwtMiddleware.Middleware
	}
	server.Routes(r, emitGuard)

	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      withObservability(r, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Use chi's response writer wrapper to capture status code and bytes written
		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		handler.ServeHTTP(wrr, r)

		duration := time.Since(start)

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"bytes", wrr.BytesWritten(),
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)
	})
}
