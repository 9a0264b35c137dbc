// Package domain contains the core domain types for the arbitrage context.
package domain

// Kind is the shape of an arbitrage cycle.
type Kind string

const (
	// KindSimple buys a currency with GOLD and sells it back: GOLD -> C -> GOLD.
	KindSimple Kind = "SIMPLE"

	// KindCross sells one currency for GOLD and buys another with it: A -> GOLD -> B.
	KindCross Kind = "CROSS"

	// KindTriangular walks A -> B -> C -> A with GOLD-settled legs.
	KindTriangular Kind = "TRIANGULAR"
)

// Tickets returns how many paid transactions the cycle needs.
func (k Kind) Tickets() int {
	switch k {
	case KindSimple:
		return 2
	case KindCross, KindTriangular:
		return 3
	default:
		return 0
	}
}

// HopRisk is the execution risk attributed to the cycle shape alone.
func (k Kind) HopRisk() float64 {
	switch k {
	case KindSimple:
		return 0.2
	case KindCross:
		return 0.5
	case KindTriangular:
		return 0.8
	default:
		return 1
	}
}

// String returns a human-readable description of the kind.
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "Simple (GOLD ↔ currency)"
	case KindCross:
		return "Cross (currency ↔ currency via GOLD)"
	case KindTriangular:
		return "Triangular (A → B → C → A)"
	default:
		return "Unknown"
	}
}
