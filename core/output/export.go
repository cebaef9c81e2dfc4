package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"website-audit/core/types"
)

// Export is the machine-readable form of an estimation result
type Export struct {
	Summary     Summary                `json:"summary"`
	Breakdown   []types.EntityEstimate `json:"breakdown"`
	Multipliers OrderedHours           `json:"multipliers"`
	Assumptions []string               `json:"assumptions"`
	Risks       []string               `json:"risks"`
	Metadata    *ExportMetadata        `json:"metadata,omitempty"`
}

// Summary holds the top-level hour figures
type Summary struct {
	TotalHours      float64 `json:"total_hours"`
	BaseHours       float64 `json:"base_hours"`
	MultiplierHours float64 `json:"multiplier_hours"`
	MigrationHours  float64 `json:"migration_hours"`
	AdditionalHours float64 `json:"additional_hours"`
	BufferHours     float64 `json:"buffer_hours"`
	Subtotal        float64 `json:"subtotal"`
}

// ExportMetadata identifies a run. It is never read back into the model.
type ExportMetadata struct {
	EstimateID  uuid.UUID       `json:"estimate_id"`
	ProjectName string          `json:"project_name"`
	AuditDate   string          `json:"audit_date"`
	RiskLevel   types.RiskLevel `json:"risk_level"`
	GeneratedAt time.Time       `json:"generated_at"`
	Cost        *CostProjection `json:"cost,omitempty"`
}

// NewMetadata stamps a fresh estimate ID
func NewMetadata(input *types.ProjectInput, cost *CostProjection, now time.Time) *ExportMetadata {
	return &ExportMetadata{
		EstimateID:  uuid.New(),
		ProjectName: input.ResolvedProjectName(),
		AuditDate:   input.ResolvedAuditDate(),
		RiskLevel:   input.ResolvedRiskLevel(),
		GeneratedAt: now.UTC(),
		Cost:        cost,
	}
}

// NewExport converts a result into its machine-readable form
func NewExport(r *types.EstimationResult) *Export {
	return &Export{
		Summary: Summary{
			TotalHours:      r.TotalHours,
			BaseHours:       r.BaseHours,
			MultiplierHours: r.MultiplierHours,
			MigrationHours:  r.MigrationHours,
			AdditionalHours: r.AdditionalHours,
			BufferHours:     r.BufferHours,
			Subtotal:        r.Subtotal,
		},
		Breakdown:   append([]types.EntityEstimate{}, r.Breakdown...),
		Multipliers: append(OrderedHours{}, r.Multipliers...),
		Assumptions: append([]string{}, r.Assumptions...),
		Risks:       append([]string{}, r.Risks...),
	}
}

// ResultFromExport rebuilds a result so a report can be re-rendered from an
// export. Older exports without a subtotal get it recomputed.
func ResultFromExport(e *Export) *types.EstimationResult {
	subtotal := e.Summary.Subtotal
	if subtotal == 0 {
		subtotal = e.Summary.TotalHours - e.Summary.BufferHours
	}
	return &types.EstimationResult{
		BaseHours:       e.Summary.BaseHours,
		MultiplierHours: e.Summary.MultiplierHours,
		MigrationHours:  e.Summary.MigrationHours,
		AdditionalHours: e.Summary.AdditionalHours,
		Subtotal:        subtotal,
		BufferHours:     e.Summary.BufferHours,
		TotalHours:      e.Summary.TotalHours,
		Breakdown:       append([]types.EntityEstimate(nil), e.Breakdown...),
		Multipliers:     append([]types.MultiplierHours(nil), e.Multipliers...),
		Assumptions:     append([]string(nil), e.Assumptions...),
		Risks:           append([]string(nil), e.Risks...),
	}
}

// DecodeExport reads an export document
func DecodeExport(r io.Reader) (*Export, error) {
	var e Export
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("failed to decode estimation result: %w", err)
	}
	return &e, nil
}

// JSONFormatter writes the export document
type JSONFormatter struct {
	Indent bool
}

// Format implements Formatter
func (JSONFormatter) Format() Format { return FormatJSON }

// Render implements Formatter
func (f JSONFormatter) Render(w io.Writer, report *Report) error {
	export := NewExport(report.Result)
	export.Metadata = report.Metadata

	enc := json.NewEncoder(w)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(export)
}

// OrderedHours is a name→hours object that keeps key order through JSON
type OrderedHours []types.MultiplierHours

// MarshalJSON implements json.Marshaler
func (o OrderedHours) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Hours)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OrderedHours) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("multipliers: expected object, got %v", tok)
	}

	out := OrderedHours{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var hours float64
		if err := dec.Decode(&hours); err != nil {
			return fmt.Errorf("multipliers.%s: %w", key, err)
		}
		out = append(out, types.MultiplierHours{Name: key, Hours: hours})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}
