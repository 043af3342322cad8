package api

import (
	"net/http"

	"github.com/rs/cors"

	"route-planner-service/internal/api/handlers"
	"route-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(manager *services.SessionManager) http.Handler {
	mux := http.NewServeMux()

	sessionHandler := &handlers.SessionHandler{Manager: manager}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/sessions", sessionHandler.Collection)
	mux.HandleFunc("/sessions/{id}", sessionHandler.ByID)
	mux.HandleFunc("/sessions/{id}/sheet", sessionHandler.LoadSheet)
	mux.HandleFunc("/sessions/{id}/start", sessionHandler.SetStart)
	mux.HandleFunc("/sessions/{id}/selection", sessionHandler.SetSelection)
	mux.HandleFunc("/sessions/{id}/optimize", sessionHandler.Optimize)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Content-Type"},
	})

	return loggingMiddleware(c.Handler(mux))
}
