package api

import (
	"github.com/gorilla/mux"
	"github.com/mkalev/modelvet/internal/auth"
)

// SetupRoutes wires the feedback endpoints. The auth middleware is optional
// so the server can run without a token issuer in local setups.
func SetupRoutes(handler *FeedbackHandler, authMiddleware *auth.Middleware) *mux.Router {
	r := mux.NewRouter()

	r.Use(CORSMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)
	if authMiddleware != nil {
		r.Use(authMiddleware.RequireAuth)
	}

	r.HandleFunc("/api/v1/feedback", handler.SubmitFeedback).Methods("POST")
	r.HandleFunc("/api/v1/feedback", handler.ListFeedback).Methods("GET")
	r.HandleFunc("/api/v1/feedback/{recordID}", handler.GetFeedback).Methods("GET")
	r.HandleFunc("/api/v1/schema", handler.GetSchema).Methods("GET")

	return r
}
