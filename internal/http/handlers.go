package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"finsight/internal/core"
)

const maxQuestionLength = 2000

// handleSummary serves the canonical financial summary.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.finance.Summary()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type askRequest struct {
	Question string `json:"question"`
}

// handleAsk forwards a free-form question to the advisor.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	question := sanitizeInput(req.Question)
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if len(question) > maxQuestionLength {
		writeError(w, http.StatusBadRequest, "question is too long")
		return
	}

	if cached, ok := s.askCache.Get(question); ok {
		slog.DebugContext(r.Context(), "Ask cache hit")
		writeJSON(w, http.StatusOK, cached)
		return
	}

	result, err := s.finance.Ask(r.Context(), question)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.askCache.Set(question, result)
	writeJSON(w, http.StatusOK, result)
}

// handleSimulate runs a what-if scenario over the canonical ledger.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var params core.SimulationParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if params.ReductionPercentage != nil {
		pct := *params.ReductionPercentage
		if pct < 0 || pct > 100 {
			writeError(w, http.StatusBadRequest, "reduction_percentage must be between 0 and 100")
			return
		}
	}

	cacheKey := simulationCacheKey(params)
	if cacheKey != "" {
		if cached, ok := s.simCache.Get(cacheKey); ok {
			slog.DebugContext(r.Context(), "Simulation cache hit")
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := s.finance.Simulate(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if cacheKey != "" {
		s.simCache.Set(cacheKey, result)
	}
	writeJSON(w, http.StatusOK, result)
}

// simulationCacheKey canonicalizes simulation parameters for cache lookup.
// Returns "" when the params cannot be serialized, which skips caching.
func simulationCacheKey(params core.SimulationParams) string {
	key, err := json.Marshal(params)
	if err != nil {
		return ""
	}
	return string(key)
}

// handleAllTransactions serves the full ledger in presentation form.
func (s *Server) handleAllTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := s.finance.AllTransactions()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
