// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions and
// the named default for every optional field.
package types

import "strings"

// Category identifies a kind of entity in the cost model
type Category string

const (
	CategoryContentType    Category = "content_type"
	CategoryParagraph      Category = "paragraph"
	CategoryTaxonomy       Category = "taxonomy"
	CategoryMediaType      Category = "media_type"
	CategoryView           Category = "view"
	CategoryWebform        Category = "webform"
	CategoryBlock          Category = "block"
	CategoryCustomModule   Category = "custom_module"
	CategoryThemeComponent Category = "theme_component"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// categoryKeys maps inventory keys to categories, in breakdown order.
var categoryKeys = []struct {
	Key      string
	Category Category
}{
	{"content_types", CategoryContentType},
	{"paragraphs", CategoryParagraph},
	{"taxonomies", CategoryTaxonomy},
	{"media_types", CategoryMediaType},
	{"views", CategoryView},
	{"webforms", CategoryWebform},
	{"blocks", CategoryBlock},
	{"custom_modules", CategoryCustomModule},
	{"theme_components", CategoryThemeComponent},
}

// Categories returns every category in breakdown order
func Categories() []Category {
	out := make([]Category, len(categoryKeys))
	for i, ck := range categoryKeys {
		out[i] = ck.Category
	}
	return out
}

// CategoryKeys returns every inventory key in breakdown order
func CategoryKeys() []string {
	out := make([]string, len(categoryKeys))
	for i, ck := range categoryKeys {
		out[i] = ck.Key
	}
	return out
}

// CategoryForKey resolves an inventory key such as "content_types"
func CategoryForKey(key string) (Category, bool) {
	for _, ck := range categoryKeys {
		if ck.Key == key {
			return ck.Category, true
		}
	}
	return "", false
}

// KeyForCategory is the inverse of CategoryForKey
func KeyForCategory(c Category) string {
	for _, ck := range categoryKeys {
		if ck.Category == c {
			return ck.Key
		}
	}
	return ""
}

// Complexity is the tier used for table lookups. Values outside the
// three known tiers are kept as given and simply miss in the tables.
type Complexity string

const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// DefaultComplexity applies when an entity or migration omits its tier
const DefaultComplexity = ComplexityMedium

// ResolveComplexity lower-cases raw and falls back to DefaultComplexity when empty
func ResolveComplexity(raw string) Complexity {
	if raw == "" {
		return DefaultComplexity
	}
	return Complexity(strings.ToLower(raw))
}

// IsKnown reports whether c is one of the three tiers
func (c Complexity) IsKnown() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	}
	return false
}

// RiskLevel selects the contingency buffer
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DefaultRiskLevel applies when the level is missing or unrecognised
const DefaultRiskLevel = RiskMedium

// ResolveRiskLevel lower-cases raw and falls back to DefaultRiskLevel
func ResolveRiskLevel(raw string) RiskLevel {
	switch level := RiskLevel(strings.ToLower(raw)); level {
	case RiskLow, RiskMedium, RiskHigh:
		return level
	}
	return DefaultRiskLevel
}
