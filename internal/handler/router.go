package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	mergeHandler *MergeHandler,
	allowedOrigins []string,
	middlewares ...mux.MiddlewareFunc,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"quotation-merger"}`))
	}).Methods(http.MethodGet)

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	for _, mw := range middlewares {
		api.Use(mw)
	}

	routes := []struct {
		path    string
		method  string
		handler http.HandlerFunc
	}{
		{"/limits", http.MethodGet, mergeHandler.Limits},
		{"/merge", http.MethodPost, mergeHandler.Merge},
		{"/overlay", http.MethodPost, mergeHandler.Overlay},
	}
	for _, rt := range routes {
		api.HandleFunc(rt.path, rt.handler).Methods(rt.method)
	}
	// mux clears a method mismatch once a later sibling route fails on its
	// path, so known paths answer 405 through explicit fallbacks.
	for _, rt := range routes {
		api.Handle(rt.path, methodNotAllowed(rt.method))
	}

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
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Page-Count",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
