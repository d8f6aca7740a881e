package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/smartbyte/shopassist/internal/api/handler"
	custommiddleware "github.com/smartbyte/shopassist/internal/api/middleware"
	"github.com/smartbyte/shopassist/internal/catalog"
	"github.com/smartbyte/shopassist/internal/config"
	"github.com/smartbyte/shopassist/internal/security"
)

// NewRouter creates and configures the stub server's HTTP router
func NewRouter(cfg config.ServerConfig, c *catalog.Catalog) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authMiddleware := custommiddleware.NewAuthMiddleware(tokens)

	conversationHandler := handler.NewConversationHandler(c)
	adminHandler := handler.NewAdminHandler(cfg.AdminPasswordHash, tokens, c)

	r.Route("/api", func(r chi.Router) {
		r.Route("/conversation", func(r chi.Router) {
			r.Get("/health", conversationHandler.Health)
			r.Post("/message", conversationHandler.ProcessMessage)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/products/upload", adminHandler.UploadProducts)
			})
		})
	})

	return r
}
