package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/platepos/api/internal/config"
	"github.com/platepos/api/internal/handler"
	mw "github.com/platepos/api/internal/middleware"
	"github.com/platepos/api/internal/service"
	"github.com/platepos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, orders *service.OrderService, menu *service.MenuService, reports *service.ReportService, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(cfg.JWTSecret, cfg.PinHash)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		orderHandler := handler.NewOrderHandler(orders)
		r.Route("/orders", orderHandler.RegisterRoutes)

		menuHandler := handler.NewMenuHandler(menu)
		r.Route("/menu-items", menuHandler.RegisterRoutes)

		reportsHandler := handler.NewReportsHandler(reports)
		r.Route("/reports", reportsHandler.RegisterRoutes)
	})

	return r
}
