/*
detect.go - Signature-based analysis-kind detection

PURPOSE:
  Classifies an uploaded table as reactive, proactive or both by the
  presence of signature columns, so callers that did not say which
  pipeline they mean still get routed correctly.

SEE ALSO:
  - validator.go: The schemas the detected kind selects
*/
package dataset

// Signature columns per family. A handful of well-known names is
// enough: real uploads always carry at least one of them.
var (
	reactiveSignature  = []string{"horas_trabajadas", "horas", "horas_hombre_mes", "num_lesiones", "lesiones", "dias_perdidos"}
	proactiveSignature = []string{"iart_real", "iart_programado", "opas_real", "nart_prog", "nart_ejec"}
)

// DetectKind classifies a table by its normalized column names. Both is
// returned only when signatures from both families appear; a table with
// neither signature defaults to reactive, matching how uploads have
// always been treated.
func DetectKind(tbl Table) Kind {
	norm := tbl.WithNormalizedColumns()

	hasReactive := hasAny(norm, reactiveSignature)
	hasProactive := hasAny(norm, proactiveSignature)

	switch {
	case hasReactive && hasProactive:
		return KindBoth
	case hasProactive:
		return KindProactive
	default:
		return KindReactive
	}
}

func hasAny(t Table, columns []string) bool {
	for _, c := range columns {
		if t.HasColumn(c) {
			return true
		}
	}
	return false
}
