package types

// AuditReport is the higher-level audit document consumed by the site generator.
// It is unrelated to EstimationResult.
type AuditReport struct {
	ProjectName string       `json:"project_name"`
	AuditDate   string       `json:"audit_date"`
	CurrentCMS  string       `json:"current_cms"`
	URL         string       `json:"url"`
	Summary     AuditSummary `json:"summary"`
	KeyFindings KeyFindings  `json:"key_findings"`
}

// AuditSummary carries the headline counts shown on the landing page
type AuditSummary struct {
	ContentTypes   int     `json:"content_types"`
	Paragraphs     int     `json:"paragraphs"`
	TotalPages     int     `json:"total_pages"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// KeyFindings feeds the key findings page. Empty fields fall back to canned text.
type KeyFindings struct {
	ExecutiveSummary    string   `json:"executive_summary"`
	Strengths           []string `json:"strengths"`
	Opportunities       []string `json:"opportunities"`
	Challenges          []string `json:"challenges"`
	ProjectSize         string   `json:"project_size"`
	BaselinePercentage  string   `json:"baseline_percentage"`
	Complexity          string   `json:"complexity"`
	ComplexityRationale string   `json:"complexity_rationale"`
	MigrationPriority   string   `json:"migration_priority"`
	PerformanceTarget   string   `json:"performance_target"`
	AccessibilityTarget string   `json:"accessibility_target"`
	TimelineNote        string   `json:"timeline_note"`
	ImmediateActions    []string `json:"immediate_actions"`
	StrategicDecisions  []string `json:"strategic_decisions"`
}
