// Package api - API types for the estimation endpoints
// These types define the contract for /estimate and /report.
// The API is stateless; identical bodies give identical figures.
package api

import (
	"encoding/json"

	"website-audit/core/engine"
	"website-audit/core/output"
)

// EstimateResponse is the output of POST /estimate: the export document
// (with metadata and cost) plus the rendered markdown report
type EstimateResponse struct {
	*output.Export

	// Report is the markdown report
	Report string `json:"report"`

	Response *ResponseMetadata `json:"response_metadata,omitempty"`
}

// ResponseMetadata describes the request that produced a response
type ResponseMetadata struct {
	InputHash     string `json:"input_hash"`
	EngineVersion string `json:"engine_version"`
	InputFormat   string `json:"input_format"`
	DurationMs    int64  `json:"duration_ms"`
}

// ReportRequest is the input to POST /report: an export to re-render and
// the inventory it was computed from
type ReportRequest struct {
	Export *output.Export   `json:"export"`
	Input  json.RawMessage `json:"input"`
}

// DiffRequest is the input to POST /diff: two exports of the same site
type DiffRequest struct {
	Before *output.Export `json:"before"`
	After  *output.Export `json:"after"`
}

// CostModelResponse is the output of GET /cost-model
type CostModelResponse struct {
	engine.CostModel
	HourlyRate string `json:"hourly_rate"`
	Currency   string `json:"currency"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a machine-readable code and a message
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}
