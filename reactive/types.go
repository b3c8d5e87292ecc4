/*
Package reactive computes the reactive OSH indicators of IESS CD 513:
accident frequency, severity and risk rate from monthly incident logs.

PURPOSE:
  One of the two indicator pipelines. Takes one raw record per calendar
  month and produces a full report table (month rows plus quarterly and
  annual summary rows computed under period-specific K constants) and a
  chart table (the month-only series renderers plot).

KEY CONCEPTS IN THIS FILE (types.go):
  - MonthlyRecord: the typed input, one month of raw counts
  - IndicatorRow: one computed report row, tagged Month/Quarter/Year
  - ReportTable / ChartTable: the two output snapshots
  - FromTable: the seam from loosely-typed loader tables to records

SEE ALSO:
  - engine.go: The Process pipeline and the rollup fold
  - stats.go: Summary statistics over a finished report
  - demo.go: Seeded demonstration data
*/
package reactive

import (
	"github.com/preventia/indicator-engine/dataset"
	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// INPUT RECORD
// =============================================================================

// MonthlyRecord is one calendar month of raw accident data. Hours may be
// zero or negative: Process derives them from headcount at the standard
// 173.33 h/worker plus overtime in that case.
type MonthlyRecord struct {
	Month                 string
	Year                  int
	Workers               float64
	Hours                 float64 // reported worked hours for the month
	Overtime              float64
	AccidentsWithLeave    float64
	AccidentsWithoutLeave float64
	Illnesses             float64
	LostDays              float64
}

// TotalInjuries is the injury count the indices are built from.
func (r MonthlyRecord) TotalInjuries() float64 {
	return r.AccidentsWithLeave + r.AccidentsWithoutLeave + r.Illnesses
}

// =============================================================================
// OUTPUT ROWS
// =============================================================================

// RowKind tags a report row as a raw month or a derived summary.
type RowKind string

const (
	RowMonth   RowKind = "mes"
	RowQuarter RowKind = "trimestre"
	RowYear    RowKind = "anual"
)

// IndicatorRow is one computed report row. Summary rows carry the sums
// they were built from so export layers can print them next to the
// indices; Workers on a summary row is the period average headcount.
type IndicatorRow struct {
	Kind  RowKind
	Label string // month name, quarter caption or the annual caption
	Order int    // sorting rank within the report

	Workers               float64
	Hours                 float64
	Overtime              float64
	AccidentsWithLeave    float64
	AccidentsWithoutLeave float64
	Illnesses             float64
	TotalInjuries         float64
	LostDays              float64

	IF float64
	IG float64
	TR float64
	K  float64 // normalization constant the indices were computed with
}

// ReportTable is the complete report: month rows, four quarter rows and
// the annual row, in report order. A fresh table is built on every
// Process call; callers own it outright.
type ReportTable struct {
	Rows []IndicatorRow
}

// MonthRows returns the month-kind subset in report order.
func (t ReportTable) MonthRows() []IndicatorRow {
	var out []IndicatorRow
	for _, r := range t.Rows {
		if r.Kind == RowMonth {
			out = append(out, r)
		}
	}
	return out
}

// YearRow returns the annual summary row, if present.
func (t ReportTable) YearRow() (IndicatorRow, bool) {
	for _, r := range t.Rows {
		if r.Kind == RowYear {
			return r, true
		}
	}
	return IndicatorRow{}, false
}

// ChartTable is the month-only view shaped as labeled series, ready for
// chart collaborators: one entry per month across all three indices.
type ChartTable struct {
	Months []string
	IF     []float64
	IG     []float64
	TR     []float64
}

// =============================================================================
// TABLE CONVERSION
// =============================================================================

// FromTable converts a normalized loader table into typed records. The
// schema accepts both upload forms: the detailed one (horas_hombre_mes
// plus the acc_baja / acc_sin_baja / enf_ocupacionales triple) and the
// condensed one (horas_trabajadas plus num_lesiones, which reads as
// accidents with leave). The returned SchemaError lists every concern
// with neither form present; non-numeric cells coerce to zero.
func FromTable(tbl dataset.Table) ([]MonthlyRecord, error) {
	hoursCol := ""
	for _, col := range []string{"horas_hombre_mes", "horas_trabajadas"} {
		if tbl.HasColumn(col) {
			hoursCol = col
			break
		}
	}
	detailed := tbl.HasColumn("acc_baja") && tbl.HasColumn("acc_sin_baja") && tbl.HasColumn("enf_ocupacionales")

	var missing []string
	if !tbl.HasColumn("mes") {
		missing = append(missing, "mes")
	}
	if hoursCol == "" {
		missing = append(missing, "horas_trabajadas")
	}
	if !detailed && !tbl.HasColumn("num_lesiones") {
		missing = append(missing, "num_lesiones")
	}
	if !tbl.HasColumn("dias_perdidos") {
		missing = append(missing, "dias_perdidos")
	}
	if len(missing) > 0 {
		return nil, indicator.NewSchemaError("reactive", missing)
	}

	records := make([]MonthlyRecord, len(tbl.Rows))
	for i := range tbl.Rows {
		year, _ := tbl.Float(i, "anio")
		workers, _ := tbl.Float(i, "num_trabajadores")
		hours, _ := tbl.Float(i, hoursCol)
		overtime, _ := tbl.Float(i, "horas_extras")
		lostDays, _ := tbl.Float(i, "dias_perdidos")

		rec := MonthlyRecord{
			Month:    tbl.Text(i, "mes"),
			Year:     int(year),
			Workers:  workers,
			Hours:    hours,
			Overtime: overtime,
			LostDays: lostDays,
		}
		if detailed {
			rec.AccidentsWithLeave, _ = tbl.Float(i, "acc_baja")
			rec.AccidentsWithoutLeave, _ = tbl.Float(i, "acc_sin_baja")
			rec.Illnesses, _ = tbl.Float(i, "enf_ocupacionales")
		} else {
			rec.AccidentsWithLeave, _ = tbl.Float(i, "num_lesiones")
		}
		records[i] = rec
	}
	return records, nil
}

// =============================================================================
// DISPLAY METADATA
// =============================================================================

// DisplayColumns lists the report fields in presentation order, with the
// Spanish captions export collaborators print. Rendering itself stays
// outside this package.
func DisplayColumns() []dataset.DisplayColumn {
	return []dataset.DisplayColumn{
		{Key: "mes", Label: "Período"},
		{Key: "num_trabajadores", Label: "Trabajadores"},
		{Key: "total_horas", Label: "Total Horas"},
		{Key: "acc_baja", Label: "Acc. c/Baja"},
		{Key: "acc_sin_baja", Label: "Acc. s/Baja"},
		{Key: "enf_ocupacionales", Label: "Enf. Ocup."},
		{Key: "total_lesiones", Label: "Total Lesiones"},
		{Key: "dias_perdidos", Label: "Días Perdidos"},
		{Key: "IF", Label: "Índ. Frecuencia"},
		{Key: "IG", Label: "Índ. Gravedad"},
		{Key: "TR", Label: "Tasa Riesgo"},
		{Key: "constante_k", Label: "Constante K"},
	}
}
