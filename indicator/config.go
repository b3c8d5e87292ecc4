package indicator

// =============================================================================
// NORMALIZATION CONSTANTS - Period-dependent K factors
// =============================================================================

// NormalizationConstants holds the K factor applied per period length.
// The factors scale injury counts to the international 200,000-hour
// exposure base: the annual factor whole, the quarterly factor a fourth,
// the monthly factor a twelfth.
type NormalizationConstants struct {
	Monthly   float64
	Quarterly float64
	Yearly    float64
}

// DefaultConstants returns the IESS CD 513 factors.
func DefaultConstants() NormalizationConstants {
	return NormalizationConstants{
		Monthly:   16_666.67,
		Quarterly: 50_000.0,
		Yearly:    200_000.0,
	}
}

// IsZero reports whether no factor has been set. Engines substitute
// DefaultConstants for a zero value so an uninitialized config never
// divides everything down to nothing.
func (c NormalizationConstants) IsZero() bool {
	return c.Monthly == 0 && c.Quarterly == 0 && c.Yearly == 0
}

// DefaultComplianceTarget is the IG_TOTAL percentage a month must reach to
// be reported as compliant.
const DefaultComplianceTarget = 80.0

// Compliance status captions, exactly as reports print them.
const (
	StatusMeets = "CUMPLE"
	StatusFails = "NO CUMPLE"
)
