package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mkalev/modelvet/internal/dataset"
	"github.com/mkalev/modelvet/internal/feedback"
	"github.com/mkalev/modelvet/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*store.InMemoryStore, http.Handler) {
	t.Helper()
	columns := []dataset.Column{
		{Name: "age", Type: dataset.ColumnTypeNumber},
		{Name: "city", Type: dataset.ColumnTypeString},
		{Name: "target", Type: dataset.ColumnTypeNumber},
	}
	schema, err := dataset.NewSchema(columns, "target",
		map[string]string{"age": "Age (years)"}, map[string]struct{}{"city": {}})
	require.NoError(t, err)

	st := store.NewInMemoryStore()
	handler := NewFeedbackHandler(st, schema)
	return st, SetupRoutes(handler, nil)
}

const biasPayload = `{
	"id": "r-1",
	"feedback_type": "bias",
	"created_at": "2025-06-01T12:00:00Z",
	"metadata": {"description": "Feedback on bias."}
}`

func TestSubmitFeedback(t *testing.T) {
	st, router := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(biasPayload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "r-1")

	saved, err := st.Get(req.Context(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, feedback.TypeBias, saved.Type)
}

func TestSubmitFeedback_UnknownType(t *testing.T) {
	st, router := testRouter(t)

	payload := `{"id": "r-1", "feedback_type": "unknown", "metadata": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported feedback type")

	records, err := st.List(req.Context(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, records, "nothing may be persisted for an unknown type")
}

func TestSubmitFeedback_MissingID(t *testing.T) {
	_, router := testRouter(t)

	payload := `{"feedback_type": "bias", "metadata": {"description": "Feedback on bias."}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetFeedback(t *testing.T) {
	_, router := testRouter(t)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(biasPayload))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/r-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"feedback_type":"bias"`)
}

func TestGetFeedback_NotFound(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListFeedback(t *testing.T) {
	_, router := testRouter(t)

	submit := httptest.NewRequest(http.MethodPost, "/api/v1/feedback", strings.NewReader(biasPayload))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feedback", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"r-1"`)
}

func TestGetSchema(t *testing.T) {
	_, router := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schema", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"target":"target"`)
	assert.Contains(t, body, `"features":["age","city"]`)
	assert.Contains(t, body, `"categorical":["city"]`)
	assert.Contains(t, body, `"Age (years)"`)
}
