package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/qora-app/qora-server/internal/api/handlers"
	"github.com/qora-app/qora-server/internal/api/middleware"
	"github.com/qora-app/qora-server/internal/config"
	"github.com/qora-app/qora-server/internal/service"
	"github.com/qora-app/qora-server/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	checkinHandler := handlers.NewCheckinHandler(services.Checkin, hub)
	craftHandler := handlers.NewCraftHandler(services.Craft, hub)
	inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
	mintHandler := handlers.NewMintHandler(services.Mint, hub)
	collectionHandler := handlers.NewCollectionHandler(services.Collection, services.SpawnPoint)
	adminHandler := handlers.NewAdminHandler(services.Collection, services.SpawnPoint)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			r.Post("/checkin", checkinHandler.Checkin)
			r.Post("/craft", craftHandler.Craft)
			r.Get("/inventory", inventoryHandler.Get)

			r.Route("/mint", func(r chi.Router) {
				r.Post("/ton", mintHandler.Build(service.ChainTON))
				r.Put("/ton", mintHandler.Confirm(service.ChainTON))
				r.Post("/ethereum", mintHandler.Build(service.ChainEthereum))
				r.Put("/ethereum", mintHandler.Confirm(service.ChainEthereum))
			})

			r.Route("/collections", func(r chi.Router) {
				r.Get("/", collectionHandler.List)
				r.Get("/{id}", collectionHandler.Get)
			})

			r.Get("/spawn-points", collectionHandler.ListSpawnPoints)

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Post("/collections", adminHandler.CreateCollection)
				r.Post("/collections/{id}/cards", adminHandler.CreateCard)
				r.Post("/spawn-points", adminHandler.CreateSpawnPoint)
				r.Put("/spawn-points/{id}/active", adminHandler.SetSpawnPointActive)
				r.Delete("/spawn-points/{id}", adminHandler.DeleteSpawnPoint)
			})
		})

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
