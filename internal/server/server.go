// Package server provides the HTTP REST API for resume scoring.
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/juju/clock"
	"go.uber.org/zap"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/logging"
	"github.com/jonathan/resume-intake/internal/pipeline"
	"github.com/jonathan/resume-intake/internal/server/middleware"
	"github.com/jonathan/resume-intake/internal/server/ratelimit"
	"github.com/jonathan/resume-intake/internal/types"
)

const (
	// bodyOverhead covers the JSON fields around the base64 file content.
	bodyOverhead           = 64 << 10
	defaultShutdownTimeout = 30 * time.Second
	healthCheckTimeout     = 2 * time.Second
)

// ResumeScorer runs the resume pipeline.
type ResumeScorer interface {
	Process(ctx context.Context, req types.ScoreResumeRequest) (*pipeline.Result, error)
	Parse(ctx context.Context, req types.ParseResumeRequest) (*pipeline.ParseResult, error)
}

// ScoreReader reads stored candidate scores.
type ScoreReader interface {
	GetScore(ctx context.Context, candidateID, jobID string) (*types.ScoreRecord, bool, error)
	GetCandidateScores(ctx context.Context, candidateID string) ([]types.ScoreRecord, error)
	GetJobScores(ctx context.Context, jobID string, filter types.JobScoreFilter) ([]types.ScoreRecord, error)
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Deps holds the collaborators the server routes requests to.
type Deps struct {
	Scorer       ResumeScorer
	Scores       ScoreReader
	Requirements pipeline.RequirementsResolver
	Health       HealthChecker // optional
	Logger       *zap.Logger
	Clock        clock.Clock
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	scorer          ResumeScorer
	scores          ScoreReader
	requirements    pipeline.RequirementsResolver
	health          HealthChecker
	rateLimiter     *ratelimit.Limiter
	tokens          *TokenService
	logger          *zap.Logger
	production      bool
	maxBodyBytes    int64
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Scorer == nil || deps.Scores == nil || deps.Requirements == nil {
		return nil, fmt.Errorf("server requires a scorer, a score reader and a requirements resolver")
	}

	maxUpload, err := cfg.MaxUploadBytes()
	if err != nil {
		return nil, err
	}

	s := &Server{
		scorer:          deps.Scorer,
		scores:          deps.Scores,
		requirements:    deps.Requirements,
		health:          deps.Health,
		rateLimiter:     ratelimit.NewLimiter(ratelimit.FromConfig(cfg.RateLimit), deps.Clock),
		tokens:          NewTokenService(cfg.Auth, deps.Clock),
		logger:          logging.OrNop(deps.Logger),
		production:      cfg.IsProduction(),
		maxBodyBytes:    int64(base64.StdEncoding.EncodedLen(int(maxUpload))) + bodyOverhead,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	api := http.NewServeMux()
	api.HandleFunc("POST /v1/resumes/score", s.handleScoreResume)
	api.HandleFunc("POST /v1/resumes/parse", s.handleParseResume)
	api.HandleFunc("GET /v1/candidates/{candidate_id}/jobs/{job_id}/score", s.handleGetScore)
	api.HandleFunc("GET /v1/candidates/{candidate_id}/scores", s.handleListCandidateScores)
	api.HandleFunc("GET /v1/jobs/{job_id}/scores", s.handleListJobScores)
	api.HandleFunc("GET /v1/jobs/{job_id}/requirements", s.handleGetJobRequirements)

	var apiHandler http.Handler = api
	if s.tokens != nil {
		apiHandler = middleware.AuthMiddleware(s.tokens.AsTokenValidator())(api)
	} else {
		s.logger.Warn("bearer token authentication disabled: no JWT secret configured")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/v1/", apiHandler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.withLogging(s.withRateLimit(s.withCORS(mux))),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout, // covers the model call
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves requests until ctx is done or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Correlation-ID")
		w.Header().Set("Access-Control-Expose-Headers", "X-Correlation-ID, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		}
		if id := w.Header().Get("X-Correlation-ID"); id != "" {
			fields = append(fields, zap.String(logging.FieldCorrelationID, id))
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			s.logger.Error("request completed", fields...)
		case rec.status >= http.StatusBadRequest:
			s.logger.Warn("request completed", fields...)
		default:
			s.logger.Info("request completed", fields...)
		}
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unavailable",
				"database": "unreachable",
			})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// apiError is the error half of the response envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiResponse is the envelope every /v1 endpoint responds with.
type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// successResponse writes data in the success envelope.
func (s *Server) successResponse(w http.ResponseWriter, data any) {
	s.jsonResponse(w, http.StatusOK, apiResponse{Success: true, Data: data})
}

// errorResponse maps err to a status and writes it in the error envelope.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status, code := classify(err)
	s.jsonResponse(w, status, apiResponse{
		Error: &apiError{Code: code, Message: clientMessage(err, status, s.production)},
	})
}

// extractClientID extracts the client identifier from the request.
// It uses the IP address from RemoteAddr; forwarded headers are not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := int(info.RetryAfter.Round(time.Second).Seconds())
	if info.RetryAfter > 0 && retryAfter == 0 {
		retryAfter = 1
	}
	if retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
		zap.Int("retry_after_seconds", retryAfter),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, apiResponse{
		Error: &apiError{
			Code:    CodeRateLimited,
			Message: fmt.Sprintf("Rate limit exceeded. Retry in %d seconds.", retryAfter),
		},
	})
}
