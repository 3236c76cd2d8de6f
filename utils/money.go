package utils

import (
	"math"
	"strings"
)

// CentTolerance is the float comparison slack for money invariants
// (amounts are stored as NUMERIC(12,2)).
const CentTolerance = 0.01

// Round2 rounds x to 2 decimal places (banking-style simple round).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ContainsFold reports whether s contains substr, case-insensitively.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
