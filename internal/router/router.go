package router

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"gemchat-backend/internal/handlers"
	"gemchat-backend/internal/middleware"
	"gemchat-backend/web"
)

func New(
	chatHandler *handlers.ChatHandler,
	chatLimiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Chat API ────
	r.Route("/api/chat", func(r chi.Router) {
		r.Use(chatLimiter.Middleware)
		r.Get("/", chatHandler.Fetch)
		r.Post("/", chatHandler.Submit)
		r.Put("/", chatHandler.Rename)
		r.Delete("/", chatHandler.Remove)
	})

	// ──── Browser UI ────
	static, err := fs.Sub(web.Assets, "static")
	if err != nil {
		log.Fatalf("✗ Embedded UI assets missing: %v", err)
	}
	fileServer := http.FileServer(http.FS(static))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})
	r.Get("/app.js", fileServer.ServeHTTP)
	r.Get("/style.css", fileServer.ServeHTTP)

	return r
}
