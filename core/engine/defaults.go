package engine

var defaultAssumptions = []string{
	"Requirements are clearly defined",
	"Team has Drupal experience",
	"Standard development practices followed",
	"No major scope changes expected",
}

var defaultRisks = []string{
	"Requirements may evolve during development",
	"Migration complexity may be higher than assessed",
	"Third-party integrations may require additional effort",
}

// DefaultAssumptions returns a copy of the canned assumptions
func DefaultAssumptions() []string {
	return append([]string(nil), defaultAssumptions...)
}

// DefaultRisks returns a copy of the canned risks
func DefaultRisks() []string {
	return append([]string(nil), defaultRisks...)
}

// ResolveAssumptions passes supplied through verbatim unless it is empty
func ResolveAssumptions(supplied []string) []string {
	if len(supplied) == 0 {
		return DefaultAssumptions()
	}
	return append([]string(nil), supplied...)
}

// ResolveRisks passes supplied through verbatim unless it is empty
func ResolveRisks(supplied []string) []string {
	if len(supplied) == 0 {
		return DefaultRisks()
	}
	return append([]string(nil), supplied...)
}
