package includes

import "fmt"

// Calculation selects which enumeration strategy runs for every resolved
// package in one invocation.
type Calculation int

const (
	// CalculationEstimate uses include-glob expansion: fast, imprecise.
	CalculationEstimate Calculation = iota
	// CalculationExact delegates to the TypeScript compiler's
	// listFilesOnly mode: slow, authoritative.
	CalculationExact
)

func (c Calculation) String() string {
	switch c {
	case CalculationEstimate:
		return "estimate"
	case CalculationExact:
		return "exact"
	default:
		return fmt.Sprintf("Calculation(%d)", int(c))
	}
}

// ParseCalculation maps the user-facing strategy name onto a Calculation.
func ParseCalculation(value string) (Calculation, error) {
	switch value {
	case "estimate":
		return CalculationEstimate, nil
	case "exact":
		return CalculationExact, nil
	default:
		return CalculationEstimate, fmt.Errorf("invalid enumeration method: %v", value)
	}
}
