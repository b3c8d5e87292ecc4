/*
Package indicator provides the numeric core shared by the reactive and
proactive OSH indicator pipelines.

PURPOSE:
  This package contains the primitives both pipelines agree on: the
  division policy, the percentage cap, the period calendar and the
  normalization constants mandated by IESS CD 513. Domain packages
  (reactive, proactive) build their tables on top of these.

KEY CONCEPTS IN THIS FILE (arith.go):
  - SafeDivide: the single division policy used everywhere a ratio occurs
  - CappedPercent: ratio expressed as a percentage, clamped to 100
  - DeriveMonthlyHours: hours fallback from headcount at 173.33 h/worker

DESIGN PRINCIPLES:
  1. Degenerate arithmetic never escapes: zero denominators, NaN and Inf
     all collapse to 0.0 inside SafeDivide
  2. Precision: fixed decimal constants (173.33) are multiplied exactly
     via decimal.Decimal before converting back to float64
  3. Purity: nothing here reads clocks, seeds or globals

SEE ALSO:
  - calendar.go: Month ordering and quarter grouping
  - config.go: Normalization constants and compliance targets
*/
package indicator

import (
	"math"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DIVISION POLICY
// =============================================================================

// SafeDivide returns numerator/denominator, collapsing every degenerate
// case to 0.0: zero or NaN denominator, and NaN or infinite results.
//
// The zero result deliberately conflates "no data" (denominator zero, no
// opportunity measured) with "nothing achieved" (numerator zero against a
// real denominator). Downstream reports depend on that reading; callers
// must not re-distinguish the two.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 || math.IsNaN(denominator) {
		return 0.0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0.0
	}
	return result
}

// CappedPercent returns (numerator/denominator)*100 through SafeDivide,
// clamped to 100. Over-execution (executed > planned) reads as full
// compliance, never as more.
func CappedPercent(numerator, denominator float64) float64 {
	pct := SafeDivide(numerator, denominator) * 100
	return math.Min(pct, 100.0)
}

// =============================================================================
// STANDARD HOURS FALLBACK
// =============================================================================

// StandardMonthlyHours is the assumed full-time hours for one worker in one
// month: 40 h/week at 4.33 weeks. Kept as a decimal so the per-worker
// product is exact.
var StandardMonthlyHours = decimal.New(17333, -2)

// DeriveMonthlyHours resolves the hours-worked figure for a month. A
// positive reported value wins as-is; otherwise the figure is derived from
// headcount at StandardMonthlyHours per worker plus overtime.
func DeriveMonthlyHours(reported, workers, overtime float64) float64 {
	if reported > 0 {
		return reported
	}
	derived := decimal.NewFromFloat(workers).
		Mul(StandardMonthlyHours).
		Add(decimal.NewFromFloat(overtime))
	f, _ := derived.Float64()
	return f
}

// Round2 rounds to two decimal places through decimal arithmetic, matching
// how report surfaces present indicator values.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
