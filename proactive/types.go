/*
types.go - Input records and output rows for the proactive pipeline

PURPOSE:
  Typed counterparts of the raw proactive upload: one MonthlyRecord per
  month with every planned/executed pair as a named field, and one
  IndicatorRow per month with the computed percentages, the composite
  and the verdict.

SEE ALSO:
  - catalog.go: The indicator definitions the fields map to
  - engine.go: The computation itself
*/
package proactive

import (
	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// INPUT RECORD
// =============================================================================

// MonthlyRecord is one month of planned/executed counts across all
// eight families. OPAS and IDPS carry two factors per side: their
// effective numerator and denominator are products.
type MonthlyRecord struct {
	Month string
	Year  int

	// IART: task risk analyses
	ARTExecuted   float64
	ARTProgrammed float64

	// OPAS: planned observations. Effective = realized × compliant
	// people, programmed = scheduled × expected people.
	OPASRealized        float64
	OPASProgrammed      float64
	OPASExpectedPeople  float64
	OPASCompliantPeople float64

	// IDPS: safety dialogues. Effective = held × attendees, programmed
	// = planned × expected attendees.
	DPSHeld              float64
	DPSPlanned           float64
	DPSExpectedAttendees float64
	DPSAttendees         float64

	// IDS: substandard conditions
	DSEliminated float64
	DSDetected   float64

	// IENTS: safety training
	TrainingTrained    float64
	TrainingProgrammed float64

	// IOSEA: standardized service orders
	OSEAMet        float64
	OSEAApplicable float64

	// ICAI: corrective measures
	CAIImplemented float64
	CAIProposed    float64

	// IEF: internal audits (informational, weight 0)
	EFAudited float64
	EFTotal   float64
}

// =============================================================================
// OUTPUT ROW
// =============================================================================

// IndicatorRow is one month's computed result: a percentage per family
// code, the weighted composite and the target verdict.
type IndicatorRow struct {
	Month string
	Order int

	// Values holds the capped percentage per indicator code, keyed by
	// the catalog codes.
	Values map[string]float64

	IGTotal     float64
	Target      float64
	MeetsTarget bool
	Status      string // CUMPLE / NO CUMPLE, as reports print it
}

// Value returns the percentage computed for a code, zero when absent.
func (r IndicatorRow) Value(code string) float64 {
	return r.Values[code]
}

// IndicatorTable is the pipeline output: one row per input month, in
// calendar order. Built fresh on every Process call.
type IndicatorTable struct {
	Rows   []IndicatorRow
	Target float64
}

// =============================================================================
// TABLE CONVERSION
// =============================================================================

// Required input columns. Unlike the reactive pipeline there are no
// optional counts: every family needs both halves of its pair.
var requiredColumns = []string{
	"mes",
	"nart_prog", "nart_ejec",
	"opas_prog", "opas_real", "opas_personas_prev", "opas_personas_conf",
	"dps_plan", "dps_real", "dps_previstos", "dps_asistentes",
	"ds_detectadas", "ds_eliminadas",
	"ent_programados", "ent_entrenados",
	"osea_aplicables", "osea_cumplidos",
	"cai_propuestas", "cai_implement",
	"ef_totales", "ef_auditados",
}

// FromTable converts a normalized loader table into typed records,
// reporting every absent required column in one SchemaError.
func FromTable(tbl dataset.Table) ([]MonthlyRecord, error) {
	var missing []string
	for _, col := range requiredColumns {
		if !tbl.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, indicator.NewSchemaError("proactive", missing)
	}

	cell := func(i int, col string) float64 {
		f, _ := tbl.Float(i, col)
		return f
	}

	records := make([]MonthlyRecord, len(tbl.Rows))
	for i := range tbl.Rows {
		year, _ := tbl.Float(i, "anio")
		records[i] = MonthlyRecord{
			Month:                tbl.Text(i, "mes"),
			Year:                 int(year),
			ARTExecuted:          cell(i, "nart_ejec"),
			ARTProgrammed:        cell(i, "nart_prog"),
			OPASRealized:         cell(i, "opas_real"),
			OPASProgrammed:       cell(i, "opas_prog"),
			OPASExpectedPeople:   cell(i, "opas_personas_prev"),
			OPASCompliantPeople:  cell(i, "opas_personas_conf"),
			DPSHeld:              cell(i, "dps_real"),
			DPSPlanned:           cell(i, "dps_plan"),
			DPSExpectedAttendees: cell(i, "dps_previstos"),
			DPSAttendees:         cell(i, "dps_asistentes"),
			DSEliminated:         cell(i, "ds_eliminadas"),
			DSDetected:           cell(i, "ds_detectadas"),
			TrainingTrained:      cell(i, "ent_entrenados"),
			TrainingProgrammed:   cell(i, "ent_programados"),
			OSEAMet:              cell(i, "osea_cumplidos"),
			OSEAApplicable:       cell(i, "osea_aplicables"),
			CAIImplemented:       cell(i, "cai_implement"),
			CAIProposed:          cell(i, "cai_propuestas"),
			EFAudited:            cell(i, "ef_auditados"),
			EFTotal:              cell(i, "ef_totales"),
		}
	}
	return records, nil
}
