/*
engine.go - The proactive indicator pipeline

PURPOSE:
  One pass over the monthly records: each family's ratio through the
  shared cap-at-100 policy, the compound products for OPAS and IDPS,
  then the weighted composite and the target verdict.

COMPOSITE POLICY:
  IG_TOTAL always divides by the full configured weight sum (22 with
  the default weights), never by the weights of whatever happened to be
  measured. A family with no data scores zero and drags the composite
  down: unmeasured is not credited.

SEE ALSO:
  - catalog.go: Definitions and weights
  - indicator/arith.go: SafeDivide and CappedPercent
*/
package proactive

import (
	"sort"

	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes the proactive indicator table. Stateless between
// calls; both the target and the weights are fixed at construction.
type Engine struct {
	target  float64
	weights map[string]int
}

// NewEngine builds an engine with the given compliance target. A zero
// or negative target falls back to the IESS CD 513 default of 80.
func NewEngine(target float64) *Engine {
	return NewEngineWithWeights(target, nil)
}

// NewEngineWithWeights additionally overrides the composite weights.
// Codes absent from the override keep their catalog weight; a nil map
// keeps the catalog as-is.
func NewEngineWithWeights(target float64, overrides map[string]int) *Engine {
	if target <= 0 {
		target = indicator.DefaultComplianceTarget
	}
	weights := DefaultWeights()
	for code, w := range overrides {
		if _, known := weights[code]; known {
			weights[code] = w
		}
	}
	return &Engine{target: target, weights: weights}
}

// Target returns the compliance target the engine evaluates against.
func (e *Engine) Target() float64 {
	return e.target
}

// Process computes one IndicatorRow per record, in calendar order. The
// input slice is not modified.
func (e *Engine) Process(records []MonthlyRecord) (IndicatorTable, error) {
	if len(records) == 0 {
		return IndicatorTable{}, indicator.ErrEmptyInput
	}

	rows := make([]IndicatorRow, len(records))
	for i, rec := range records {
		rows[i] = e.computeRow(rec)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Order < rows[j].Order })

	return IndicatorTable{Rows: rows, Target: e.target}, nil
}

func (e *Engine) computeRow(rec MonthlyRecord) IndicatorRow {
	month := indicator.NormalizeMonth(rec.Month)
	values := map[string]float64{
		"IART": indicator.CappedPercent(rec.ARTExecuted, rec.ARTProgrammed),
		"OPAS": indicator.CappedPercent(
			rec.OPASRealized*rec.OPASCompliantPeople,
			rec.OPASProgrammed*rec.OPASExpectedPeople,
		),
		"IDPS": indicator.CappedPercent(
			rec.DPSHeld*rec.DPSAttendees,
			rec.DPSPlanned*rec.DPSExpectedAttendees,
		),
		"IDS":   indicator.CappedPercent(rec.DSEliminated, rec.DSDetected),
		"IENTS": indicator.CappedPercent(rec.TrainingTrained, rec.TrainingProgrammed),
		"IOSEA": indicator.CappedPercent(rec.OSEAMet, rec.OSEAApplicable),
		"ICAI":  indicator.CappedPercent(rec.CAIImplemented, rec.CAIProposed),
		"IEF":   indicator.CappedPercent(rec.EFAudited, rec.EFTotal),
	}

	igTotal := e.composite(values)
	meets := igTotal >= e.target
	status := indicator.StatusFails
	if meets {
		status = indicator.StatusMeets
	}

	return IndicatorRow{
		Month:       month,
		Order:       indicator.MonthRank(month),
		Values:      values,
		IGTotal:     igTotal,
		Target:      e.target,
		MeetsTarget: meets,
		Status:      status,
	}
}

// composite folds the weighted families into IG_TOTAL. The divisor is
// the full weight sum regardless of which values are present. The fold
// runs in catalog order: float addition is not associative, and a map
// walk would make the sum depend on iteration order.
func (e *Engine) composite(values map[string]float64) float64 {
	weighted := 0.0
	for _, code := range Codes() {
		if w := e.weights[code]; w > 0 {
			weighted += float64(w) * values[code]
		}
	}
	return indicator.SafeDivide(weighted, float64(WeightSum(e.weights)))
}
