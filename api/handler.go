// Package api - HTTP handler for estimation
// This handler wraps the engine - it contains NO estimation logic.
// All logic is delegated to core packages.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"website-audit/adapters/inventory"
	"website-audit/core/diff"
	"website-audit/core/engine"
	"website-audit/core/output"
	"website-audit/internal/config"
	apperrors "website-audit/internal/errors"
)

// Handler runs estimates for the server
type Handler struct {
	cfg *config.Config
	now func() time.Time
}

// NewHandler creates a new handler
func NewHandler(cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Handler{cfg: cfg, now: time.Now}
}

func (h *Handler) estimate(ctx context.Context, body []byte, format inventory.Format) (*EstimateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := inventory.ParseBytes(body, format, "request body")
	if err != nil {
		return nil, err
	}

	result, err := engine.Estimate(input)
	if err != nil {
		return nil, err
	}

	rate, err := h.cfg.HourlyRate()
	if err != nil {
		return nil, err
	}
	cost := output.ProjectCost(result.TotalHours, rate, h.cfg.Cost.CurrencySymbol)

	export := output.NewExport(result)
	export.Metadata = output.NewMetadata(input, cost, h.now())

	return &EstimateResponse{
		Export: export,
		Report: output.FormatReport(result, input),
	}, nil
}

func (h *Handler) report(req *ReportRequest) (string, error) {
	if req.Export == nil {
		return "", apperrors.Validation("export", "export is required")
	}

	input, err := inventory.ParseBytes(orEmptyObject(req.Input), inventory.FormatJSON, "input")
	if err != nil {
		return "", err
	}
	return output.FormatReport(output.ResultFromExport(req.Export), input), nil
}

func (h *Handler) diff(req *DiffRequest) (*diff.DiffResult, error) {
	if req.Before == nil {
		return nil, apperrors.Validation("before", "before export is required")
	}
	if req.After == nil {
		return nil, apperrors.Validation("after", "after export is required")
	}
	return diff.Exports(req.Before, req.After), nil
}

func (h *Handler) costModel() (*CostModelResponse, error) {
	rate, err := h.cfg.HourlyRate()
	if err != nil {
		return nil, err
	}
	return &CostModelResponse{
		CostModel:  engine.Model(),
		HourlyRate: rate.String(),
		Currency:   h.cfg.Cost.CurrencySymbol,
	}, nil
}

// statusFor maps a domain error onto an HTTP status and error code
func statusFor(err error) (int, string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, "CANCELLED"
	}
	appErr, ok := apperrors.As(err)
	if !ok {
		return http.StatusInternalServerError, string(apperrors.TypeInternal)
	}
	switch appErr.Type {
	case apperrors.TypeUnknownCategory:
		return http.StatusUnprocessableEntity, string(appErr.Type)
	case apperrors.TypeValidation, apperrors.TypeParsing, apperrors.TypeInput:
		return http.StatusBadRequest, string(appErr.Type)
	case apperrors.TypeNotFound:
		return http.StatusNotFound, string(appErr.Type)
	default:
		return http.StatusInternalServerError, string(appErr.Type)
	}
}

func computeInputHash(body []byte) string {
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}

func orEmptyObject(raw []byte) []byte {
	if len(raw) == 0 || string(raw) == "null" {
		return []byte("{}")
	}
	return raw
}
