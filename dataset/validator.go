/*
validator.go - Schema validation for reactive and proactive uploads

PURPOSE:
  Gatekeeps both pipelines. Checks the per-pipeline required columns after
  alias resolution, coerces numeric cells, and reports everything found as
  blocking errors or non-blocking warnings. Processing only proceeds on a
  clean outcome; warnings travel with the data for display.

VALIDATION POLICY:
  - Errors (block processing): required column absent (one error listing
    EVERY missing column, not just the first), negative counts or hours.
  - Warnings (processing continues): non-numeric cells coerced to zero,
    months reporting zero worked hours, a proactive family with only one
    half of its real/programado pair.

  Messages are user-facing Spanish: they surface verbatim in the dashboards
  this engine feeds.

SEE ALSO:
  - table.go: Normalization and coercion primitives
  - detect.go: Signature-based kind detection
*/
package dataset

import (
	"fmt"
	"strings"
)

// =============================================================================
// ANALYSIS KIND
// =============================================================================

// Kind selects which pipeline's schema the validator enforces. The values
// are the wire tokens the product has always used.
type Kind string

const (
	KindReactive  Kind = "reactivo"
	KindProactive Kind = "proactivo"
	KindBoth      Kind = "ambos"
)

// ParseKind maps a raw token to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindReactive:
		return KindReactive, true
	case KindProactive:
		return KindProactive, true
	case KindBoth:
		return KindBoth, true
	}
	return "", false
}

// =============================================================================
// SCHEMAS AND ALIAS DICTIONARIES
// =============================================================================

type columnSpec struct {
	name string
	desc string
}

var reactiveColumns = []columnSpec{
	{"mes", "Mes (texto o número)"},
	{"horas_trabajadas", "Horas Hombre Trabajadas"},
	{"num_lesiones", "Número de Lesiones/Accidentes"},
	{"dias_perdidos", "Días Perdidos por Incapacidad"},
}

// Detailed uploads break horas_trabajadas and num_lesiones into their
// components; either form satisfies the schema.
var reactiveEquivalents = map[string][][]string{
	"horas_trabajadas": {{"horas_hombre_mes"}},
	"num_lesiones":     {{"acc_baja", "acc_sin_baja", "enf_ocupacionales"}},
}

// reactiveNumericColumns are sign-checked and coerced when present.
var reactiveNumericColumns = []string{
	"horas_trabajadas", "horas_hombre_mes", "horas_extras", "num_trabajadores",
	"num_lesiones", "acc_baja", "acc_sin_baja", "enf_ocupacionales", "dias_perdidos",
}

// Detailed proactive uploads name the IART pair after its source counts.
var proactiveEquivalents = map[string][][]string{
	"iart_real":       {{"nart_ejec"}},
	"iart_programado": {{"nart_prog"}},
}

// proactiveNumericColumns covers the detailed schema's count pairs.
var proactiveNumericColumns = []string{
	"nart_prog", "nart_ejec",
	"opas_prog", "opas_real", "opas_personas_prev", "opas_personas_conf",
	"dps_plan", "dps_real", "dps_previstos", "dps_asistentes",
	"ds_detectadas", "ds_eliminadas",
	"ent_programados", "ent_entrenados",
	"osea_aplicables", "osea_cumplidos",
	"cai_propuestas", "cai_implement",
	"ef_totales", "ef_auditados",
}

var proactiveFamilies = []string{"iart", "opas", "idps", "ids", "ients", "iosea", "icai"}

type aliasSet struct {
	canonical string
	aliases   []string
}

// Alias dictionaries in resolution order. Aliases are already in canonical
// column form; the canonical name always wins when both are present.
var reactiveAliases = []aliasSet{
	{"mes", []string{"month", "periodo", "fecha", "meses"}},
	{"horas_trabajadas", []string{"horas", "horas_hombre", "hh", "total_horas", "h/h"}},
	{"num_lesiones", []string{"lesiones", "accidentes", "num_accidentes", "numero_lesiones", "número_de_lesiones", "n_lesiones"}},
	{"dias_perdidos", []string{"dias", "días_perdidos", "dias_incapacidad", "jornadas_perdidas", "d_perdidos"}},
}

var proactiveAliases = []aliasSet{
	{"mes", []string{"month", "periodo", "fecha", "meses"}},
	{"iart_real", []string{"art_real", "iart_r"}},
	{"iart_programado", []string{"art_prog", "iart_p"}},
	{"opas_real", []string{"opas_r"}},
	{"opas_programado", []string{"opas_p"}},
	// dps_real is NOT an alias here: the detailed schema owns that name.
	{"idps_real", []string{"idps_r"}},
	{"idps_programado", []string{"dps_prog", "idps_p"}},
	{"ids_real", []string{"ds_real", "ids_r"}},
	{"ids_programado", []string{"ds_prog", "ids_p"}},
	{"ients_real", []string{"ents_real", "ients_r"}},
	{"ients_programado", []string{"ents_prog", "ients_p"}},
	{"iosea_real", []string{"osea_real", "iosea_r"}},
	{"iosea_programado", []string{"osea_prog", "iosea_p"}},
	{"icai_real", []string{"cai_real", "icai_r"}},
	{"icai_programado", []string{"cai_prog", "icai_p"}},
}

// =============================================================================
// OUTCOME
// =============================================================================

// Issue is one validation finding. Row is 1-based and zero when the issue
// concerns the whole column or table.
type Issue struct {
	Column  string
	Message string
	Row     int
}

// Summary describes the validated data. The totals are filled for the
// reactive schema only.
type Summary struct {
	Records       int
	Kind          Kind
	TotalHours    float64
	TotalInjuries float64
	TotalLostDays float64
}

// Outcome is the validator's verdict. Normalized and Summary are only set
// when OK: an invalid table is re-supplied by the caller, never processed.
type Outcome struct {
	OK         bool
	Errors     []Issue
	Warnings   []Issue
	Normalized Table
	Summary    Summary
}

func (o *Outcome) addError(column, message string) {
	o.Errors = append(o.Errors, Issue{Column: column, Message: message})
	o.OK = false
}

func (o *Outcome) addWarning(column, message string) {
	o.Warnings = append(o.Warnings, Issue{Column: column, Message: message})
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the table against the schema the kind demands. Unknown
// kinds validate against both schemas, reactive first; the proactive pass
// only runs once the reactive one is clean.
func Validate(tbl Table, kind Kind) Outcome {
	out := Outcome{OK: true}

	if tbl.IsEmpty() {
		out.addError("general", "La tabla está vacía o es nula")
		return out
	}

	norm := resolveAliases(tbl.WithNormalizedColumns(), kind)

	switch kind {
	case KindReactive:
		validateReactive(&norm, &out)
	case KindProactive:
		validateProactive(&norm, &out)
	default:
		validateReactive(&norm, &out)
		if out.OK {
			validateProactive(&norm, &out)
		}
	}

	if out.OK {
		out.Normalized = norm
		out.Summary = summarize(norm, kind)
	}
	return out
}

func resolveAliases(t Table, kind Kind) Table {
	var sets []aliasSet
	switch kind {
	case KindReactive:
		sets = reactiveAliases
	case KindProactive:
		sets = proactiveAliases
	default:
		sets = append(append([]aliasSet(nil), reactiveAliases...), proactiveAliases...)
	}

	for _, set := range sets {
		if t.HasColumn(set.canonical) {
			continue
		}
		for _, alias := range set.aliases {
			if t.HasColumn(alias) {
				renameColumn(&t, alias, set.canonical)
				break
			}
		}
	}
	return t
}

func renameColumn(t *Table, from, to string) {
	for i, c := range t.Columns {
		if c == from {
			t.Columns[i] = to
			break
		}
	}
	for _, r := range t.Rows {
		if v, ok := r[from]; ok {
			r[to] = v
			delete(r, from)
		}
	}
}

func validateReactive(t *Table, out *Outcome) {
	var missing []string
	for _, cs := range reactiveColumns {
		if t.HasColumn(cs.name) || hasEquivalent(t, reactiveEquivalents, cs.name) {
			continue
		}
		missing = append(missing, fmt.Sprintf("%s (%s)", cs.name, cs.desc))
	}
	if len(missing) > 0 {
		out.addError("columnas", "Columnas faltantes para análisis REACTIVO: "+strings.Join(missing, ", "))
		return
	}

	hoursCol := "horas_trabajadas"
	if !t.HasColumn(hoursCol) {
		hoursCol = "horas_hombre_mes"
	}

	// Coercion pass over whichever numeric columns this upload carries.
	// Zero hours are only counted for cells that were genuinely
	// numeric, so a coerced cell is not double-reported.
	zeroHourMonths := 0
	for _, col := range reactiveNumericColumns {
		if !t.HasColumn(col) {
			continue
		}
		coerced := 0
		for _, r := range t.Rows {
			f, ok := CoerceFloat(r[col])
			if !ok {
				coerced++
			}
			if col == hoursCol && ok && f == 0 {
				zeroHourMonths++
			}
			r[col] = f
		}
		if coerced > 0 {
			out.addWarning(col, fmt.Sprintf("%d valores no numéricos convertidos a 0", coerced))
		}
	}

	for _, col := range reactiveNumericColumns {
		if !t.HasColumn(col) {
			continue
		}
		negatives := 0
		for _, r := range t.Rows {
			if f, _ := CoerceFloat(r[col]); f < 0 {
				negatives++
			}
		}
		if negatives > 0 {
			out.addError(col, fmt.Sprintf("%d valores negativos encontrados", negatives))
		}
	}

	if zeroHourMonths > 0 {
		out.addWarning(hoursCol, fmt.Sprintf("%d meses con 0 horas trabajadas", zeroHourMonths))
	}
}

// hasEquivalent reports whether one of the column's component sets is
// fully present.
func hasEquivalent(t *Table, equivalents map[string][][]string, canonical string) bool {
	for _, set := range equivalents[canonical] {
		all := true
		for _, col := range set {
			if !t.HasColumn(col) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func validateProactive(t *Table, out *Outcome) {
	minimum := []string{"mes", "iart_real", "iart_programado"}
	var missing []string
	for _, col := range minimum {
		if !t.HasColumn(col) && !hasEquivalent(t, proactiveEquivalents, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		out.addError("columnas", "Columnas mínimas faltantes para análisis PROACTIVO: "+strings.Join(missing, ", "))
		return
	}

	// Detailed uploads get the same coercion pass as reactive ones.
	for _, col := range proactiveNumericColumns {
		if !t.HasColumn(col) {
			continue
		}
		coerced := 0
		for _, r := range t.Rows {
			f, ok := CoerceFloat(r[col])
			if !ok {
				coerced++
			}
			r[col] = f
		}
		if coerced > 0 {
			out.addWarning(col, fmt.Sprintf("%d valores no numéricos convertidos a 0", coerced))
		}
	}

	for _, fam := range proactiveFamilies {
		colReal := fam + "_real"
		colProg := fam + "_programado"

		hasReal := t.HasColumn(colReal)
		hasProg := t.HasColumn(colProg)
		if hasReal && !hasProg {
			out.addWarning(colProg, "Falta columna programada para "+strings.ToUpper(fam))
		}
		if hasProg && !hasReal {
			out.addWarning(colReal, "Falta columna real para "+strings.ToUpper(fam))
		}

		for _, col := range []string{colReal, colProg} {
			if !t.HasColumn(col) {
				continue
			}
			for _, r := range t.Rows {
				f, _ := CoerceFloat(r[col])
				r[col] = f
			}
		}
	}
}

func summarize(t Table, kind Kind) Summary {
	s := Summary{Records: len(t.Rows), Kind: kind}
	if kind == KindProactive {
		return s
	}
	for _, r := range t.Rows {
		switch {
		case t.HasColumn("horas_trabajadas"):
			f, _ := CoerceFloat(r["horas_trabajadas"])
			s.TotalHours += f
		case t.HasColumn("horas_hombre_mes"):
			f, _ := CoerceFloat(r["horas_hombre_mes"])
			s.TotalHours += f
		}
		if t.HasColumn("num_lesiones") {
			f, _ := CoerceFloat(r["num_lesiones"])
			s.TotalInjuries += f
		} else {
			for _, col := range []string{"acc_baja", "acc_sin_baja", "enf_ocupacionales"} {
				f, _ := CoerceFloat(r[col])
				s.TotalInjuries += f
			}
		}
		if t.HasColumn("dias_perdidos") {
			f, _ := CoerceFloat(r["dias_perdidos"])
			s.TotalLostDays += f
		}
	}
	return s
}
