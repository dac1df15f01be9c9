package api

import (
	"net/http"
	"time"

	"github.com/mkalev/modelvet/internal/logging"
)

const (
	corsAllowOrigin      = "Access-Control-Allow-Origin"
	corsAllowMethods     = "Access-Control-Allow-Methods"
	corsAllowHeaders     = "Access-Control-Allow-Headers"
	corsAllowCredentials = "Access-Control-Allow-Credentials"
	allowedOrigin        = "http://localhost:5173"
	allowedMethods       = "GET, POST, OPTIONS"
	allowedHeaders       = "Content-Type, Authorization"
	allowedCredentials   = "true"
	internalServerError  = "Internal server error"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware opens a session event per request, threads it through the
// context, and emits it once the handler returns.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		event := logging.NewSessionEvent("http.request")
		ctx := logging.WithContext(r.Context(), event)
		logging.EnrichHTTP(ctx, r.Method, r.URL.Path)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r.WithContext(ctx))

		logging.EnrichHTTPStatus(ctx, recorder.status)
		logging.EnrichHTTPDuration(ctx, time.Since(start))
		event.Emit()
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logging.EnrichPanic(r.Context())
				logging.Log.Error("panic recovered", "panic", err)
				http.Error(w, internalServerError, http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(corsAllowOrigin, allowedOrigin)
		w.Header().Set(corsAllowMethods, allowedMethods)
		w.Header().Set(corsAllowHeaders, allowedHeaders)
		w.Header().Set(corsAllowCredentials, allowedCredentials)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
