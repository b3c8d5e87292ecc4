package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/indicator"
	"github.com/preventia/indicator-engine/store/memory"
)

func sampleTable() dataset.Table {
	return dataset.New(
		[]string{"mes", "horas_trabajadas", "num_lesiones", "dias_perdidos"},
		[]dataset.Row{
			{"mes": "enero", "horas_trabajadas": 16000.0, "num_lesiones": 2.0, "dias_perdidos": 10.0},
			{"mes": "febrero", "horas_trabajadas": 15500.0, "num_lesiones": 0.0, "dias_perdidos": 0.0},
		},
	)
}

func TestWorkspace_CreateAndGet(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("año 2025", "", sampleTable())

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, dataset.KindReactive, ds.Kind, "kind detected from columns")

	got, err := ws.Get(ds.ID)
	require.NoError(t, err)
	assert.Equal(t, "año 2025", got.Name)
	assert.Len(t, got.Table.Rows, 2)
}

func TestWorkspace_GetUnknown(t *testing.T) {
	ws := memory.NewWorkspace()
	_, err := ws.Get("nope")
	assert.ErrorIs(t, err, indicator.ErrDatasetNotFound)
}

func TestWorkspace_SnapshotsAreIsolated(t *testing.T) {
	// GIVEN: A stored dataset
	// WHEN: The caller mutates the snapshot it was handed
	// THEN: The stored table is unaffected

	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	ds.Table.Rows[0]["dias_perdidos"] = 999.0

	got, err := ws.Get(ds.ID)
	require.NoError(t, err)
	f, _ := got.Table.Float(0, "dias_perdidos")
	assert.Equal(t, 10.0, f)
}

func TestWorkspace_ListOldestFirst(t *testing.T) {
	ws := memory.NewWorkspace()
	a := ws.Create("a", dataset.KindReactive, sampleTable())
	b := ws.Create("b", dataset.KindReactive, sampleTable())

	list := ws.List()
	require.Len(t, list, 2)
	ids := []string{list[0].ID, list[1].ID}
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, b.ID)
}

func TestWorkspace_UpdateMonth(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	// Month lookup is case-insensitive; unknown columns are ignored.
	updated, err := ws.UpdateMonth(ds.ID, "  Enero ", dataset.Row{
		"dias_perdidos": 7.0,
		"fantasma":      1.0,
	})
	require.NoError(t, err)

	f, _ := updated.Table.Float(0, "dias_perdidos")
	assert.Equal(t, 7.0, f)
	assert.False(t, updated.Table.HasColumn("fantasma"))
}

func TestWorkspace_UpdateMonthUnknownMonth(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	_, err := ws.UpdateMonth(ds.ID, "marzo", dataset.Row{"dias_perdidos": 1.0})
	assert.ErrorIs(t, err, indicator.ErrMonthNotFound)
}

func TestWorkspace_AddMonth(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	updated, err := ws.AddMonth(ds.ID, dataset.Row{"mes": "marzo", "num_lesiones": 1.0})
	require.NoError(t, err)
	require.Len(t, updated.Table.Rows, 3)

	// Unsupplied columns zero-fill.
	f, _ := updated.Table.Float(2, "horas_trabajadas")
	assert.Equal(t, 0.0, f)
	assert.Equal(t, "marzo", updated.Table.Text(2, "mes"))
}

func TestWorkspace_AddMonthRequiresMes(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	_, err := ws.AddMonth(ds.ID, dataset.Row{"num_lesiones": 1.0})
	assert.True(t, indicator.IsSchemaError(err))
}

func TestWorkspace_ReplaceAndDelete(t *testing.T) {
	ws := memory.NewWorkspace()
	ds := ws.Create("x", dataset.KindReactive, sampleTable())

	smaller := dataset.New([]string{"mes"}, []dataset.Row{{"mes": "junio"}})
	replaced, err := ws.Replace(ds.ID, smaller)
	require.NoError(t, err)
	assert.Len(t, replaced.Table.Rows, 1)

	require.NoError(t, ws.Delete(ds.ID))
	assert.ErrorIs(t, ws.Delete(ds.ID), indicator.ErrDatasetNotFound)
}
