package environment

import "strings"

// Environment represents the environment a run belongs to.
type Environment string

const (
	// Development for local runs against throwaway databases.
	Development Environment = "development"
	// Production for runs against shared databases.
	Production Environment = "production"
	// Staging for runs against staging databases.
	Staging Environment = "staging"
)

// Parse maps a name or its short alias (dev, stage, prod) to an Environment.
// Unknown and empty names map to Development.
func Parse(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether e is Production.
func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) String() string {
	return string(e)
}
