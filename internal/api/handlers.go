package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/limjk/policylens/internal/llm"
	"github.com/limjk/policylens/internal/research"
)

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query                    string `json:"query"`
	UserType                 string `json:"userType"`
	IncludeCrossVerification *bool  `json:"includeCrossVerification"`
}

// SearchResponse wraps a research result for the wire.
type SearchResponse struct {
	Success       bool             `json:"success"`
	Query         string           `json:"query"`
	UserType      string           `json:"userType"`
	Results       *research.Result `json:"results"`
	DocumentCount int              `json:"documentCount"`
	SearchTime    string           `json:"searchTime"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userType := llm.UserLayperson
	if req.UserType == string(llm.UserLawyer) {
		userType = llm.UserLawyer
	}

	includeCrossVerification := true
	if req.IncludeCrossVerification != nil {
		includeCrossVerification = *req.IncludeCrossVerification
	}

	result, err := s.research.Research(r.Context(), research.Request{
		Query:                    req.Query,
		UserType:                 userType,
		IncludeCrossVerification: includeCrossVerification,
	})
	if err != nil {
		if errors.Is(err, research.ErrEmptyQuery) {
			respondError(w, http.StatusBadRequest, "query is required")
			return
		}
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}

	respondJSON(w, http.StatusOK, SearchResponse{
		Success:       true,
		Query:         req.Query,
		UserType:      string(userType),
		Results:       result,
		DocumentCount: result.DocumentCount,
		SearchTime:    time.Now().UTC().Format(time.RFC3339),
	})
}
