package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chartdoc/pkg/chart"
	"github.com/matzehuels/chartdoc/pkg/pipeline"
	"github.com/matzehuels/chartdoc/pkg/store"
	"github.com/matzehuels/chartdoc/pkg/transform"
)

// =============================================================================
// Response Types
// =============================================================================

// errorPayload is the JSON body for all error responses.
type errorPayload struct {
	Error errorDetail `json:"error"`
}

// errorDetail locates a defect within the submitted document.
// Path is set for structural errors, Row/Key for cross-reference errors.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Key     string `json:"key,omitempty"`
}

// validateResponse reports a successful validation.
type validateResponse struct {
	Valid  bool `json:"valid"`
	Series int  `json:"series"`
	Rows   int  `json:"rows"`
}

// documentSummary is the list/create view of a stored document.
type documentSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Hash      string `json:"hash"`
	CreatedAt string `json:"createdAt"`
}

func summarize(rec *store.Record) documentSummary {
	return documentSummary{
		ID:        rec.ID,
		Title:     rec.Title,
		Type:      rec.Type,
		Hash:      rec.Hash,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate runs both validation phases without storing anything.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := chart.DecodeCandidate(r.Body)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	doc, err := s.Runner.Validate(r.Context(), candidate)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validateResponse{
		Valid:  true,
		Series: doc.SeriesCount(),
		Rows:   doc.RowCount(),
	})
}

// handleCreateDocument validates, transforms, and stores a candidate.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	candidate, err := chart.DecodeCandidate(r.Body)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	result, err := s.Runner.Execute(r.Context(), candidate, pipeline.Options{Persist: true})
	if err != nil {
		var structural *chart.StructuralError
		var crossref *chart.CrossRefError
		if errors.As(err, &structural) || errors.As(err, &crossref) {
			writeValidationError(w, err)
			return
		}
		s.Logger.Error("create document failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "store document")
		return
	}
	writeJSON(w, http.StatusCreated, summarize(result.Record))
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.Store.List(r.Context())
	if err != nil {
		s.Logger.Error("list documents failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "list documents")
		return
	}
	summaries := make([]documentSummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, summarize(rec))
	}
	writeJSON(w, http.StatusOK, summaries)
}

// handleGetDocument returns the canonical serialization of a stored document.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	rec := s.getRecord(w, r)
	if rec == nil {
		return
	}
	doc, err := rec.Document()
	if err != nil {
		s.Logger.Error("stored document failed revalidation", "id", rec.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "load document")
		return
	}
	data, err := chart.MarshalDocument(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "encode document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "document not found")
			return
		}
		s.Logger.Error("delete document failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "delete document")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetShape returns one transformed projection of a stored document.
// Shapes are computed through the runner so they share its cache.
func (s *Server) handleGetShape(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	if err := transform.ValidateTarget(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_target", err.Error())
		return
	}

	rec := s.getRecord(w, r)
	if rec == nil {
		return
	}
	doc, err := rec.Document()
	if err != nil {
		s.Logger.Error("stored document failed revalidation", "id", rec.ID, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "load document")
		return
	}

	shapes, _, err := s.Runner.Transform(r.Context(), doc, rec.Hash, pipeline.Options{Targets: []string{target}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "transform document")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(shapes[target])
}

// getRecord fetches the record named in the URL, writing the error response
// itself. A nil return means the response has already been written.
func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) *store.Record {
	id := chi.URLParam(r, "id")
	rec, err := s.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "document not found")
			return nil
		}
		s.Logger.Error("get document failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "internal", "load document")
		return nil
	}
	return rec
}

// =============================================================================
// Response Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorPayload{Error: errorDetail{Code: code, Message: message}})
}

// writeValidationError maps validation failures onto structured payloads.
// Structural errors carry the dotted path, cross-reference errors the row
// index and series key. Anything else is treated as a malformed request body.
func writeValidationError(w http.ResponseWriter, err error) {
	var structural *chart.StructuralError
	if errors.As(err, &structural) {
		writeJSON(w, http.StatusUnprocessableEntity, errorPayload{Error: errorDetail{
			Code:    structural.Code,
			Message: structural.Error(),
			Path:    structural.Path,
		}})
		return
	}
	var crossref *chart.CrossRefError
	if errors.As(err, &crossref) {
		detail := errorDetail{
			Code:    crossref.Code(),
			Message: crossref.Error(),
			Key:     crossref.Key,
		}
		if crossref.Row >= 0 {
			row := crossref.Row
			detail.Row = &row
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorPayload{Error: detail})
		return
	}
	writeError(w, http.StatusBadRequest, "malformed_json", err.Error())
}
