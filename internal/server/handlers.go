package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-intake/internal/requirements"
	"github.com/jonathan/resume-intake/internal/types"
)

// scoreResponse is the data returned by the scoring endpoint.
type scoreResponse struct {
	ParsedData         *types.ParsedResumeData `json:"parsedData"`
	URLs               types.ExtractedURLs     `json:"urls"`
	Score              types.CandidateScore    `json:"score"`
	Metadata           types.ScoreMetadata     `json:"metadata"`
	RequirementsStatus requirements.Status     `json:"requirementsStatus"`
	RecordID           string                  `json:"recordId,omitempty"`
}

// parseResponse is the data returned by the parse-only endpoint.
type parseResponse struct {
	ParsedData *types.ParsedResumeData `json:"parsedData"`
	URLs       types.ExtractedURLs     `json:"urls"`
	Pages      int                     `json:"pages,omitempty"`
}

// handleScoreResume parses, scores and stores one resume for one job.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}
	if req.CorrelationID == "" {
		req.CorrelationID = strings.TrimSpace(r.Header.Get("X-Correlation-ID"))
	}

	result, err := s.scorer.Process(r.Context(), req)
	if err != nil {
		if req.CorrelationID != "" {
			w.Header().Set("X-Correlation-ID", req.CorrelationID)
		}
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("X-Correlation-ID", result.Metadata.CorrelationID)
	s.successResponse(w, scoreResponse{
		ParsedData:         result.ParsedData,
		URLs:               result.ExtractedURLs,
		Score:              result.Score,
		Metadata:           result.Metadata,
		RequirementsStatus: result.RequirementsStatus,
		RecordID:           result.RecordID,
	})
}

// handleParseResume parses a resume without scoring or storing it.
func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req types.ParseResumeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.scorer.Parse(r.Context(), req)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.successResponse(w, parseResponse{
		ParsedData: result.ParsedData,
		URLs:       result.ExtractedURLs,
		Pages:      result.Pages,
	})
}

// handleGetScore returns the stored score of one candidate for one job.
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	candidateID := r.PathValue("candidate_id")
	jobID := r.PathValue("job_id")

	rec, found, err := s.scores.GetScore(r.Context(), candidateID, jobID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if !found {
		s.errorResponse(w, &ErrNotFound{Resource: "score", ID: candidateID + "/" + jobID})
		return
	}

	s.successResponse(w, rec)
}

// handleListCandidateScores lists a candidate's scores, newest first.
func (s *Server) handleListCandidateScores(w http.ResponseWriter, r *http.Request) {
	records, err := s.scores.GetCandidateScores(r.Context(), r.PathValue("candidate_id"))
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.successResponse(w, nonNil(records))
}

// handleListJobScores lists a job's scores by descending overall score.
func (s *Server) handleListJobScores(w http.ResponseWriter, r *http.Request) {
	filter, err := parseJobScoreFilter(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.scores.GetJobScores(r.Context(), r.PathValue("job_id"), filter)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.successResponse(w, nonNil(records))
}

// handleGetJobRequirements returns the requirements a job is scored against
// and whether they came from the stored posting or the fallback.
func (s *Server) handleGetJobRequirements(w http.ResponseWriter, r *http.Request) {
	s.successResponse(w, s.requirements.Resolve(r.Context(), r.PathValue("job_id")))
}

// decodeJSON reads a size-limited JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body exceeds %d bytes: %w", maxBytesErr.Limit, err)
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// parseJobScoreFilter reads the min_score and limit query parameters.
func parseJobScoreFilter(r *http.Request) (types.JobScoreFilter, error) {
	var filter types.JobScoreFilter
	query := r.URL.Query()

	if raw := query.Get("min_score"); raw != "" {
		minScore, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(minScore) || minScore < 0 || minScore > 100 {
			return filter, &ErrValidation{Field: "min_score", Message: "must be a number between 0 and 100"}
		}
		filter.MinScore = &minScore
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"}
		}
		filter.Limit = limit
	}

	return filter, nil
}

func nonNil(records []types.ScoreRecord) []types.ScoreRecord {
	if records == nil {
		return []types.ScoreRecord{}
	}
	return records
}
