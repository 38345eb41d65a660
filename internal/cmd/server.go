package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/aryansoni13/F1-Prediction-model/internal/api"
)

// setupServer builds the HTTP server: gin router wrapped in permissive
// CORS, since the dashboard frontend is served from another origin.
func setupServer(services *Services, port string) *http.Server {
	router := api.NewRouter(services.Handlers)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: c.Handler(router),
	}
}
