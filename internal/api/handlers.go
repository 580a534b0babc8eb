package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/pipeline"
	"github.com/matzehuels/graphlens/pkg/store"
)

// defaultListLimit bounds GET /v1/runs when no limit is given.
const defaultListLimit = 50

// analyzeRequest is the body of POST /v1/analyze.
type analyzeRequest struct {
	Graph   graph.File `json:"graph"`
	Kinds   []string   `json:"kinds,omitempty"`
	Source  *int       `json:"source,omitempty"`
	Refresh bool       `json:"refresh,omitempty"`
}

// analyzeResponse is the body returned by POST /v1/analyze and
// GET /v1/runs/{id}.
type analyzeResponse struct {
	ID        uuid.UUID       `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	GraphHash string          `json:"graph_hash"`
	Nodes     int             `json:"nodes"`
	Edges     int             `json:"edges"`
	Kinds     []string        `json:"kinds"`
	Report    pipeline.Report `json:"report"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var body analyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	g, err := graph.New(body.Graph.Nodes, body.Graph.Edges)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid graph: "+err.Error())
		return
	}

	// An omitted source selects the virtual-source mode.
	source := dagpath.NoNode
	if body.Source != nil {
		source = *body.Source
	}

	opts := pipeline.Options{
		Kinds:   body.Kinds,
		Source:  source,
		Refresh: body.Refresh,
		Logger:  s.logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := s.runner.Execute(req.Context(), g, opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dagpath.ErrNodeOutOfRange) || errors.Is(err, pipeline.ErrInvalidOptions) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	rec := store.Record{
		ID:        result.RunID,
		CreatedAt: time.Now().UTC(),
		GraphHash: result.GraphHash,
		Nodes:     g.N(),
		Edges:     g.EdgeCount(),
		Kinds:     opts.Kinds,
	}
	if data, err := json.Marshal(result.Report); err == nil {
		rec.Report = data
	}
	if err := s.store.Put(req.Context(), rec); err != nil {
		s.logger.Error("store run", "run_id", rec.ID, "error", err)
	}

	respondJSON(w, http.StatusOK, analyzeResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		GraphHash: rec.GraphHash,
		Nodes:     rec.Nodes,
		Edges:     rec.Edges,
		Kinds:     rec.Kinds,
		Report:    result.Report,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, req *http.Request) {
	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid run id")
		return
	}

	rec, err := s.store.Get(req.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := analyzeResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		GraphHash: rec.GraphHash,
		Nodes:     rec.Nodes,
		Edges:     rec.Edges,
		Kinds:     rec.Kinds,
	}
	if len(rec.Report) > 0 {
		_ = json.Unmarshal(rec.Report, &resp.Report)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, req *http.Request) {
	limit := defaultListLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	recs, err := s.store.List(req.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type runSummary struct {
		ID        uuid.UUID `json:"id"`
		CreatedAt time.Time `json:"created_at"`
		GraphHash string    `json:"graph_hash"`
		Nodes     int       `json:"nodes"`
		Edges     int       `json:"edges"`
		Kinds     []string  `json:"kinds"`
	}
	summaries := make([]runSummary, len(recs))
	for i, rec := range recs {
		summaries[i] = runSummary{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			GraphHash: rec.GraphHash,
			Nodes:     rec.Nodes,
			Edges:     rec.Edges,
			Kinds:     rec.Kinds,
		}
	}
	respondJSON(w, http.StatusOK, map[string]any{"runs": summaries})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
