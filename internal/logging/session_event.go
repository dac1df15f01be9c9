package logging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const (
	contextKeySessionEvent contextKey = "session_event"
	contextKeyTraceID      contextKey = "trace_id"
)

// SessionEvent is a single structured log entry capturing the full lifecycle
// of one feedback request. It is incrementally populated as the request flows
// through middleware, handlers, and the store.
type SessionEvent struct {
	TraceID   string    `json:"trace_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`

	// Request metadata
	HTTPMethod     string `json:"http_method,omitempty"`
	HTTPPath       string `json:"http_path,omitempty"`
	HTTPStatusCode int    `json:"http_status_code,omitempty"`
	HTTPDurationMs int64  `json:"http_duration_ms,omitempty"`

	// User context
	UserID    string `json:"user_id,omitempty"`
	UserEmail string `json:"user_email,omitempty"`

	// Feedback context
	RecordID     string `json:"record_id,omitempty"`
	FeedbackType string `json:"feedback_type,omitempty"`
	Destination  string `json:"destination,omitempty"`

	// Error tracking
	Error          string `json:"error,omitempty"`
	PanicRecovered bool   `json:"panic_recovered,omitempty"`
}

// NewSessionEvent creates a SessionEvent with a fresh trace ID and timestamp.
func NewSessionEvent(eventType string) *SessionEvent {
	return &SessionEvent{
		TraceID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// WithContext attaches a SessionEvent to a context.
func WithContext(ctx context.Context, event *SessionEvent) context.Context {
	ctx = context.WithValue(ctx, contextKeySessionEvent, event)
	ctx = context.WithValue(ctx, contextKeyTraceID, event.TraceID)
	return ctx
}

// FromContext retrieves the SessionEvent from a context.
func FromContext(ctx context.Context) *SessionEvent {
	if event, ok := ctx.Value(contextKeySessionEvent).(*SessionEvent); ok {
		return event
	}
	return nil
}

// GetTraceID retrieves just the trace ID from context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(contextKeyTraceID).(string); ok {
		return traceID
	}
	return ""
}

func EnrichHTTP(ctx context.Context, method, path string) {
	if event := FromContext(ctx); event != nil {
		event.HTTPMethod = method
		event.HTTPPath = path
	}
}

func EnrichHTTPStatus(ctx context.Context, statusCode int) {
	if event := FromContext(ctx); event != nil {
		event.HTTPStatusCode = statusCode
	}
}

func EnrichHTTPDuration(ctx context.Context, duration time.Duration) {
	if event := FromContext(ctx); event != nil {
		event.HTTPDurationMs = duration.Milliseconds()
	}
}

func EnrichUser(ctx context.Context, userID, email string) {
	if event := FromContext(ctx); event != nil {
		event.UserID = userID
		event.UserEmail = email
	}
}

func EnrichFeedback(ctx context.Context, recordID, feedbackType string) {
	if event := FromContext(ctx); event != nil {
		event.RecordID = recordID
		event.FeedbackType = feedbackType
	}
}

func EnrichDestination(ctx context.Context, destination string) {
	if event := FromContext(ctx); event != nil {
		event.Destination = destination
	}
}

func EnrichError(ctx context.Context, err error) {
	if event := FromContext(ctx); event != nil && err != nil {
		event.Error = err.Error()
	}
}

func EnrichPanic(ctx context.Context) {
	if event := FromContext(ctx); event != nil {
		event.PanicRecovered = true
	}
}

// Emit writes the event once, at the end of the request.
func (e *SessionEvent) Emit() {
	Log.Info("session",
		"trace_id", e.TraceID,
		"event_type", e.EventType,
		"http_method", e.HTTPMethod,
		"http_path", e.HTTPPath,
		"http_status_code", e.HTTPStatusCode,
		"http_duration_ms", e.HTTPDurationMs,
		"user_id", e.UserID,
		"record_id", e.RecordID,
		"feedback_type", e.FeedbackType,
		"destination", e.Destination,
		"error", e.Error,
		"panic_recovered", e.PanicRecovered,
	)
}
