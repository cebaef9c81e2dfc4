// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs estimation logic.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"website-audit/adapters/inventory"
	"website-audit/internal/config"
	apperrors "website-audit/internal/errors"
	"website-audit/internal/logging"
)

// MaxBodyBytes bounds request bodies
const MaxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	handler *Handler
	mux     *http.ServeMux
	version string
	log     *zap.Logger
}

// NewServer creates a new API server
func NewServer(version string, cfg *config.Config) *Server {
	s := &Server{
		handler: NewHandler(cfg),
		mux:     http.NewServeMux(),
		version: version,
		log:     logging.Component("api"),
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /estimate", s.handleEstimate)
	s.mux.HandleFunc("POST /report", s.handleReport)
	s.mux.HandleFunc("POST /diff", s.handleDiff)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /cost-model", s.handleCostModel)
}

// handleEstimate handles POST /estimate. The body is an inventory document,
// JSON unless ?format=yaml or ?format=hcl is given.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	format := inventory.FormatJSON
	switch f := inventory.Format(r.URL.Query().Get("format")); f {
	case "", inventory.FormatJSON:
	case inventory.FormatYAML, inventory.FormatHCL:
		format = f
	default:
		s.writeError(w, apperrors.Validation("format", "unsupported inventory format %q", f))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.writeError(w, apperrors.Input("failed to read request body", err))
		return
	}

	// Execute engine (NO ESTIMATION LOGIC HERE)
	result, err := s.handler.estimate(r.Context(), body, format)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result.Response = &ResponseMetadata{
		InputHash:     computeInputHash(body),
		EngineVersion: s.version,
		InputFormat:   string(format),
		DurationMs:    time.Since(start).Milliseconds(),
	}

	s.log.Info("estimate served",
		zap.String("estimate_id", result.Metadata.EstimateID.String()),
		zap.Float64("total_hours", result.Summary.TotalHours))
	s.writeJSON(w, result, http.StatusOK)
}

// handleReport handles POST /report
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, apperrors.Parsing("invalid JSON body", err))
		return
	}

	report, err := s.handler.report(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, report)
}

// handleDiff handles POST /diff
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, apperrors.Parsing("invalid JSON body", err))
		return
	}

	result, err := s.handler.diff(&req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "website-audit",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleCostModel handles GET /cost-model
func (s *Server) handleCostModel(w http.ResponseWriter, r *http.Request) {
	model, err := s.handler.costModel()
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, model, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	body := ErrorBody{Code: code, Message: err.Error()}
	if appErr, ok := apperrors.As(err); ok {
		body.Message = appErr.Message
		if appErr.Cause != nil {
			body.Message += ": " + appErr.Cause.Error()
		}
		body.Context = appErr.Context
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	} else {
		s.log.Debug("request rejected", zap.String("code", code), zap.Error(err))
	}
	s.writeJSON(w, ErrorResponse{Error: body}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr), zap.String("version", s.version))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
