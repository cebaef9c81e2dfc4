package types

// Defaults for optional top-level fields of the input document
const (
	DefaultProjectName = "Website Audit"
	DefaultAuditDate   = "2025-11-13"
	DefaultEntityName  = "Unknown"
)

// Reserved top-level keys. Any other key holding a sequence is an entity category.
const (
	KeyProjectName = "project_name"
	KeyAuditDate   = "audit_date"
	KeyRiskLevel   = "risk_level"
	KeyMultipliers = "multipliers"
	KeyMigration   = "migration"
	KeyAssumptions = "assumptions"
	KeyRisks       = "risks"
)

// IsReservedKey reports whether key is a configuration key rather than a category
func IsReservedKey(key string) bool {
	switch key {
	case KeyProjectName, KeyAuditDate, KeyRiskLevel, KeyMultipliers,
		KeyMigration, KeyAssumptions, KeyRisks:
		return true
	}
	return false
}

// ProjectInput is one immutable snapshot of an inventory plus its configuration.
// Empty strings and nil slices mean "absent".
type ProjectInput struct {
	ProjectName string
	AuditDate   string
	RiskLevel   string

	// Multipliers keep document order
	Multipliers []Multiplier

	Migration *Migration

	Assumptions []string
	Risks       []string

	// Sections are the entity sequences keyed by their raw inventory key, in document order
	Sections []Section
}

// Section is one entity sequence of the inventory
type Section struct {
	Key      string
	Entities []Entity
}

// Entity is a raw inventory record
type Entity struct {
	Name       string
	Complexity string
}

// Multiplier is a named fractional addend applied to base hours
type Multiplier struct {
	Name string
	Rate float64
}

// Migration describes the content volume to move
type Migration struct {
	Nodes      int
	Complexity string
}

// ResolvedProjectName returns the project name or DefaultProjectName
func (p *ProjectInput) ResolvedProjectName() string {
	if p == nil || p.ProjectName == "" {
		return DefaultProjectName
	}
	return p.ProjectName
}

// ResolvedAuditDate returns the audit date or DefaultAuditDate
func (p *ProjectInput) ResolvedAuditDate() string {
	if p == nil || p.AuditDate == "" {
		return DefaultAuditDate
	}
	return p.AuditDate
}

// ResolvedRiskLevel returns the risk level or DefaultRiskLevel
func (p *ProjectInput) ResolvedRiskLevel() RiskLevel {
	if p == nil {
		return DefaultRiskLevel
	}
	return ResolveRiskLevel(p.RiskLevel)
}

// RiskLabel is the risk level as written by the caller, or the default
func (p *ProjectInput) RiskLabel() string {
	if p == nil || p.RiskLevel == "" {
		return string(DefaultRiskLevel)
	}
	return p.RiskLevel
}

// MigrationNodes returns the migrated node count, 0 without a migration
func (p *ProjectInput) MigrationNodes() int {
	if p == nil || p.Migration == nil {
		return 0
	}
	return p.Migration.Nodes
}

// MigrationComplexity returns the migration tier or DefaultComplexity
func (p *ProjectInput) MigrationComplexity() Complexity {
	if p == nil {
		return DefaultComplexity
	}
	return p.Migration.ResolvedComplexity()
}

// ResolvedName returns the entity name or DefaultEntityName
func (e Entity) ResolvedName() string {
	if e.Name == "" {
		return DefaultEntityName
	}
	return e.Name
}

// ResolvedComplexity returns the lower-cased tier or DefaultComplexity
func (e Entity) ResolvedComplexity() Complexity {
	return ResolveComplexity(e.Complexity)
}

// ResolvedComplexity returns the lower-cased tier or DefaultComplexity
func (m *Migration) ResolvedComplexity() Complexity {
	if m == nil {
		return DefaultComplexity
	}
	return ResolveComplexity(m.Complexity)
}
