package indicator_test

import (
	"math"
	"testing"

	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

// =============================================================================
// DIVISION POLICY TESTS
// =============================================================================

func TestSafeDivide_ZeroDenominator_ReturnsZero(t *testing.T) {
	// GIVEN: Any numerator over a zero denominator
	// WHEN: Dividing
	// THEN: The result is 0.0, never an error or Inf

	cases := []float64{0, 10, -5, 1e12}
	for _, num := range cases {
		if got := indicator.SafeDivide(num, 0); got != 0.0 {
			t.Errorf("SafeDivide(%v, 0) = %v, want 0.0", num, got)
		}
	}
}

func TestSafeDivide_NaNDenominator_ReturnsZero(t *testing.T) {
	if got := indicator.SafeDivide(10, math.NaN()); got != 0.0 {
		t.Errorf("SafeDivide(10, NaN) = %v, want 0.0", got)
	}
}

func TestSafeDivide_NaNNumerator_ReturnsZero(t *testing.T) {
	// NaN/x is NaN, which the result check collapses to zero.
	if got := indicator.SafeDivide(math.NaN(), 4); got != 0.0 {
		t.Errorf("SafeDivide(NaN, 4) = %v, want 0.0", got)
	}
}

func TestSafeDivide_InfiniteResult_ReturnsZero(t *testing.T) {
	if got := indicator.SafeDivide(math.Inf(1), 2); got != 0.0 {
		t.Errorf("SafeDivide(+Inf, 2) = %v, want 0.0", got)
	}
}

func TestSafeDivide_RegularDivision(t *testing.T) {
	if got := indicator.SafeDivide(10, 4); !approxEqual(got, 2.5) {
		t.Errorf("SafeDivide(10, 4) = %v, want 2.5", got)
	}
}

// =============================================================================
// PERCENTAGE CAP TESTS
// =============================================================================

func TestCappedPercent_OverExecution_ClampsTo100(t *testing.T) {
	// GIVEN: 12 executed against 10 planned (raw ratio 120%)
	// WHEN: Computing the compliance percentage
	// THEN: The value clamps to 100

	if got := indicator.CappedPercent(12, 10); got != 100.0 {
		t.Errorf("CappedPercent(12, 10) = %v, want 100", got)
	}
}

func TestCappedPercent_PartialExecution(t *testing.T) {
	if got := indicator.CappedPercent(8, 10); !approxEqual(got, 80.0) {
		t.Errorf("CappedPercent(8, 10) = %v, want 80", got)
	}
}

func TestCappedPercent_ZeroPlanned_ReturnsZero(t *testing.T) {
	if got := indicator.CappedPercent(5, 0); got != 0.0 {
		t.Errorf("CappedPercent(5, 0) = %v, want 0", got)
	}
}

func TestCappedPercent_RangeForNonNegativeInputs(t *testing.T) {
	// Every executed/planned pair of non-negative values must land in [0, 100].
	pairs := [][2]float64{{0, 0}, {0, 7}, {3, 7}, {7, 7}, {70, 7}, {1, 0.001}}
	for _, p := range pairs {
		got := indicator.CappedPercent(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("CappedPercent(%v, %v) = %v, outside [0, 100]", p[0], p[1], got)
		}
	}
}

// =============================================================================
// HOURS FALLBACK TESTS
// =============================================================================

func TestDeriveMonthlyHours_ReportedWins(t *testing.T) {
	if got := indicator.DeriveMonthlyHours(16000, 90, 120); got != 16000 {
		t.Errorf("reported hours should win, got %v", got)
	}
}

func TestDeriveMonthlyHours_FallbackFromHeadcount(t *testing.T) {
	// GIVEN: No reported hours, 100 workers, 40 overtime hours
	// WHEN: Deriving
	// THEN: 100 * 173.33 + 40 = 17373

	got := indicator.DeriveMonthlyHours(0, 100, 40)
	if !approxEqual(got, 17373.0) {
		t.Errorf("DeriveMonthlyHours(0, 100, 40) = %v, want 17373", got)
	}
}

func TestDeriveMonthlyHours_NegativeReportedTriggersFallback(t *testing.T) {
	got := indicator.DeriveMonthlyHours(-1, 10, 0)
	if !approxEqual(got, 1733.3) {
		t.Errorf("DeriveMonthlyHours(-1, 10, 0) = %v, want 1733.3", got)
	}
}

func TestRound2(t *testing.T) {
	if got := indicator.Round2(2.0833333); !approxEqual(got, 2.08) {
		t.Errorf("Round2(2.0833333) = %v, want 2.08", got)
	}
}
