package casso

import "fmt"

// Strength is a symbolic priority collapsed to a single positional-encoded
// scalar: each level is 1000 times the one below, so fewer than 1000
// unit-weight penalties of one level never outvote a single unit-weight
// penalty one level up. Required is a sentinel level, never summed into the
// objective row — constraints carrying it are enforced exactly instead.
type Strength float64

const (
	Weak     Strength = 1
	Medium   Strength = 1000 * Weak
	Strong   Strength = 1000 * Medium
	Required Strength = 1000 * Strong
)

func (s Strength) String() string {
	switch s {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	case Required:
		return "required"
	default:
		return fmt.Sprintf("strength(%g)", float64(s))
	}
}

// Weight returns the numeric coefficient this strength contributes to the
// objective row for a constraint with the given per-constraint multiplier.
func (s Strength) Weight(multiplier float64) float64 { return float64(s) * multiplier }
