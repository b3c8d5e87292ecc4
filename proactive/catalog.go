/*
Package proactive computes the proactive OSH compliance indicators of
IESS CD 513: eight planned-versus-executed ratio families per month,
rolled into the weighted IG_TOTAL management index and evaluated
against a compliance target.

PURPOSE:
  The second indicator pipeline. Each month yields a percentage per
  indicator family (capped at 100), the weighted composite and a
  CUMPLE / NO CUMPLE verdict. OPAS and IDPS are compound: their
  numerator and denominator are products of two raw counts each.

KEY CONCEPTS IN THIS FILE (catalog.go):
  - Definition: one indicator family as data (code, captions, input
    columns, weight)
  - Definitions: the fixed catalog in report order
  - Weights / WeightSum: the composite weighting, IEF excluded

SEE ALSO:
  - engine.go: The Process pipeline and the composite
  - types.go: Input records and output rows
*/
package proactive

// =============================================================================
// INDICATOR CATALOG
// =============================================================================

// Definition describes one indicator family as data, so display layers
// and weight overrides need no hardcoded knowledge of the set.
// Numerator and Denominator name the input columns the ratio is built
// from; for the compound families they name the derived products.
type Definition struct {
	Code        string
	Name        string
	Description string
	Numerator   string
	Denominator string
	Weight      int
}

// catalog in report order. IEF carries weight 0: it is informational
// and never enters IG_TOTAL.
var catalog = []Definition{
	{
		Code: "IART", Name: "Análisis de Riesgos de Tarea",
		Description: "Cumplimiento de análisis de riesgos programados",
		Numerator:   "nart_ejec", Denominator: "nart_prog", Weight: 5,
	},
	{
		Code: "OPAS", Name: "Observaciones Planeadas",
		Description: "Efectividad del programa de observaciones",
		Numerator:   "opas_efectivo", Denominator: "opas_programado", Weight: 3,
	},
	{
		Code: "IDPS", Name: "Diálogos de Seguridad",
		Description: "Cumplimiento de diálogos periódicos",
		Numerator:   "dps_efectivo", Denominator: "dps_programado", Weight: 2,
	},
	{
		Code: "IDS", Name: "Demanda de Seguridad",
		Description: "Resolución de condiciones subestándar",
		Numerator:   "ds_eliminadas", Denominator: "ds_detectadas", Weight: 3,
	},
	{
		Code: "IENTS", Name: "Entrenamiento de Seguridad",
		Description: "Cumplimiento de capacitaciones",
		Numerator:   "ent_entrenados", Denominator: "ent_programados", Weight: 1,
	},
	{
		Code: "IOSEA", Name: "Órdenes de Servicio",
		Description: "Cumplimiento de estándares",
		Numerator:   "osea_cumplidos", Denominator: "osea_aplicables", Weight: 4,
	},
	{
		Code: "ICAI", Name: "Control de Accidentes/Incidentes",
		Description: "Implementación de medidas correctivas",
		Numerator:   "cai_implement", Denominator: "cai_propuestas", Weight: 4,
	},
	{
		Code: "IEF", Name: "Índice de Eficacia",
		Description: "Eficacia de auditorías internas",
		Numerator:   "ef_auditados", Denominator: "ef_totales", Weight: 0,
	},
}

// Definitions returns the catalog in report order. The slice is a copy;
// callers may reorder it freely.
func Definitions() []Definition {
	return append([]Definition(nil), catalog...)
}

// Codes returns the indicator codes in report order.
func Codes() []string {
	codes := make([]string, len(catalog))
	for i, d := range catalog {
		codes[i] = d.Code
	}
	return codes
}

// Lookup returns the definition for a code.
func Lookup(code string) (Definition, bool) {
	for _, d := range catalog {
		if d.Code == code {
			return d, true
		}
	}
	return Definition{}, false
}

// DefaultWeights returns the fixed code-to-weight mapping of the
// composite. The weighted families sum to 22.
func DefaultWeights() map[string]int {
	w := make(map[string]int, len(catalog))
	for _, d := range catalog {
		w[d.Code] = d.Weight
	}
	return w
}

// WeightSum adds up the positive weights of a mapping.
func WeightSum(weights map[string]int) int {
	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	return sum
}
