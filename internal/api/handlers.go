package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mkalev/modelvet/internal/dataset"
	"github.com/mkalev/modelvet/internal/feedback"
	"github.com/mkalev/modelvet/internal/logging"
	"github.com/mkalev/modelvet/internal/store"
)

// FeedbackHandler exposes the feedback store and the server's reference
// schema over HTTP. It is plumbing only: all validation lives in the
// feedback package's tagged-union decoding.
type FeedbackHandler struct {
	store  store.Store
	schema *dataset.Schema
}

func NewFeedbackHandler(st store.Store, schema *dataset.Schema) *FeedbackHandler {
	return &FeedbackHandler{
		store:  st,
		schema: schema,
	}
}

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var record feedback.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		var unsupported *feedback.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			http.Error(w, unsupported.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if record.ID == "" {
		http.Error(w, "record id is required", http.StatusBadRequest)
		return
	}

	if err := h.store.Save(r.Context(), &record); err != nil {
		logging.EnrichError(r.Context(), err)
		http.Error(w, "failed to save feedback", http.StatusInternalServerError)
		return
	}

	logging.EnrichFeedback(r.Context(), record.ID, string(record.Type))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": record.ID})
}

func (h *FeedbackHandler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	recordID := vars["recordID"]

	record, err := h.store.Get(r.Context(), recordID)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.EnrichError(r.Context(), err)
		http.Error(w, "failed to load feedback", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 100)

	records, err := h.store.List(r.Context(), offset, limit)
	if err != nil {
		logging.EnrichError(r.Context(), err)
		http.Error(w, "failed to list feedback", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*feedback.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

type schemaResponse struct {
	Columns     []dataset.Column  `json:"columns"`
	Target      string            `json:"target"`
	Features    []string          `json:"features"`
	Categorical []string          `json:"categorical"`
	Aliases     map[string]string `json:"aliases,omitempty"`
}

func (h *FeedbackHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	resp := schemaResponse{
		Columns:     h.schema.Columns(),
		Target:      h.schema.Target(),
		Features:    h.schema.FeatureNames(),
		Categorical: []string{},
		Aliases:     map[string]string{},
	}
	for _, col := range h.schema.Columns() {
		if h.schema.IsCategorical(col.Name) {
			resp.Categorical = append(resp.Categorical, col.Name)
		}
		if alias := h.schema.DisplayName(col.Name); alias != col.Name {
			resp.Aliases[col.Name] = alias
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
