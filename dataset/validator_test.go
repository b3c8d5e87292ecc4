package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preventia/indicator-engine/dataset"
)

func reactiveRows() []dataset.Row {
	return []dataset.Row{
		{"mes": "enero", "horas_trabajadas": 16000.0, "num_lesiones": 2.0, "dias_perdidos": 10.0},
		{"mes": "febrero", "horas_trabajadas": 15500.0, "num_lesiones": 0.0, "dias_perdidos": 0.0},
	}
}

func TestValidate_ReactiveCleanTable(t *testing.T) {
	tbl := dataset.FromRows(reactiveRows())
	out := dataset.Validate(tbl, dataset.KindReactive)

	require.True(t, out.OK)
	assert.Empty(t, out.Errors)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, 2, out.Summary.Records)
	assert.Equal(t, 31500.0, out.Summary.TotalHours)
	assert.Equal(t, 2.0, out.Summary.TotalInjuries)
	assert.Equal(t, 10.0, out.Summary.TotalLostDays)
}

func TestValidate_MissingColumnBlocksAndNamesIt(t *testing.T) {
	// GIVEN: A reactive table without dias_perdidos
	// WHEN: Validating
	// THEN: OK=false with one error naming the missing column

	rows := reactiveRows()
	for _, r := range rows {
		delete(r, "dias_perdidos")
	}
	out := dataset.Validate(dataset.FromRows(rows), dataset.KindReactive)

	require.False(t, out.OK)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0].Message, "dias_perdidos")
}

func TestValidate_MissingColumnsAllListedAtOnce(t *testing.T) {
	out := dataset.Validate(dataset.FromRows([]dataset.Row{{"mes": "enero"}}), dataset.KindReactive)

	require.False(t, out.OK)
	require.Len(t, out.Errors, 1)
	for _, col := range []string{"horas_trabajadas", "num_lesiones", "dias_perdidos"} {
		assert.Contains(t, out.Errors[0].Message, col)
	}
}

func TestValidate_AliasResolution(t *testing.T) {
	// GIVEN: A table using known aliases and raw captions with spaces
	// WHEN: Validating
	// THEN: Columns resolve to their canonical names

	tbl := dataset.FromRows([]dataset.Row{
		{"Mes": "enero", "Horas": 16000.0, "Accidentes": 1.0, "Dias": 3.0},
	})
	out := dataset.Validate(tbl, dataset.KindReactive)

	require.True(t, out.OK)
	assert.True(t, out.Normalized.HasColumn("horas_trabajadas"))
	assert.True(t, out.Normalized.HasColumn("num_lesiones"))
	assert.True(t, out.Normalized.HasColumn("dias_perdidos"))
}

func TestValidate_CanonicalWinsOverAlias(t *testing.T) {
	tbl := dataset.FromRows([]dataset.Row{
		{"mes": "enero", "horas_trabajadas": 16000.0, "horas": 1.0, "num_lesiones": 0.0, "dias_perdidos": 0.0},
	})
	out := dataset.Validate(tbl, dataset.KindReactive)

	require.True(t, out.OK)
	assert.Equal(t, 16000.0, out.Summary.TotalHours, "canonical column value wins")
}

func TestValidate_NegativeValuesAreErrors(t *testing.T) {
	rows := reactiveRows()
	rows[0]["dias_perdidos"] = -4.0
	out := dataset.Validate(dataset.FromRows(rows), dataset.KindReactive)

	require.False(t, out.OK)
	found := false
	for _, e := range out.Errors {
		if e.Column == "dias_perdidos" && strings.Contains(e.Message, "negativos") {
			found = true
		}
	}
	assert.True(t, found, "expected a negative-value error on dias_perdidos, got %v", out.Errors)
}

func TestValidate_CoercionAndZeroHoursAreWarnings(t *testing.T) {
	rows := reactiveRows()
	rows[0]["num_lesiones"] = "dos"
	rows[1]["horas_trabajadas"] = 0.0
	out := dataset.Validate(dataset.FromRows(rows), dataset.KindReactive)

	require.True(t, out.OK, "coercion and zero hours must not block processing")
	require.Len(t, out.Warnings, 2)

	// The coerced cell now reads as zero in the normalized table.
	f, _ := out.Normalized.Float(0, "num_lesiones")
	assert.Equal(t, 0.0, f)
}

func TestValidate_EmptyTable(t *testing.T) {
	out := dataset.Validate(dataset.Table{}, dataset.KindReactive)
	require.False(t, out.OK)
	require.Len(t, out.Errors, 1)
}

func TestValidate_ProactiveHalfPairWarns(t *testing.T) {
	// GIVEN: A proactive table with ids_real but no ids_programado
	// WHEN: Validating
	// THEN: Processing may continue, with a warning on the missing half

	tbl := dataset.FromRows([]dataset.Row{
		{"mes": "enero", "iart_real": 8.0, "iart_programado": 10.0, "ids_real": 5.0},
	})
	out := dataset.Validate(tbl, dataset.KindProactive)

	require.True(t, out.OK)
	found := false
	for _, w := range out.Warnings {
		if w.Column == "ids_programado" {
			found = true
		}
	}
	assert.True(t, found, "expected warning for the missing ids_programado half")
}

func TestValidate_ProactiveMinimumColumns(t *testing.T) {
	out := dataset.Validate(dataset.FromRows([]dataset.Row{{"mes": "enero"}}), dataset.KindProactive)
	require.False(t, out.OK)
	assert.Contains(t, out.Errors[0].Message, "iart_real")
}

func TestParseKind(t *testing.T) {
	k, ok := dataset.ParseKind(" Reactivo ")
	require.True(t, ok)
	assert.Equal(t, dataset.KindReactive, k)

	_, ok = dataset.ParseKind("sideways")
	assert.False(t, ok)
}

// =============================================================================
// KIND DETECTION
// =============================================================================

func TestDetectKind_Reactive(t *testing.T) {
	tbl := dataset.FromRows(reactiveRows())
	assert.Equal(t, dataset.KindReactive, dataset.DetectKind(tbl))
}

func TestDetectKind_Proactive(t *testing.T) {
	tbl := dataset.FromRows([]dataset.Row{{"mes": "enero", "iart_real": 8.0, "iart_programado": 10.0}})
	assert.Equal(t, dataset.KindProactive, dataset.DetectKind(tbl))
}

func TestDetectKind_Both(t *testing.T) {
	tbl := dataset.FromRows([]dataset.Row{
		{"mes": "enero", "horas_trabajadas": 16000.0, "opas_real": 8.0},
	})
	assert.Equal(t, dataset.KindBoth, dataset.DetectKind(tbl))
}

func TestDetectKind_UnrecognizedDefaultsToReactive(t *testing.T) {
	tbl := dataset.FromRows([]dataset.Row{{"mes": "enero", "misterio": 1.0}})
	assert.Equal(t, dataset.KindReactive, dataset.DetectKind(tbl))
}
