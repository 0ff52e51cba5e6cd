package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	uploadHandler *UploadHandler,
	healthHandler *HealthHandler,
	allowedOrigins []string,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares...)

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload-pdf", uploadHandler.UploadPDF).Methods(http.MethodPost)
	api.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)
	api.HandleFunc("/pdf/{file_id}/text", uploadHandler.GetText).Methods(http.MethodGet)
	api.HandleFunc("/pdf/{file_id}", uploadHandler.GetMetadata).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
