/*
engine.go - The reactive indicator pipeline

PURPOSE:
  Transforms monthly records into the full report: per-month IF/IG/TR
  under the monthly K constant, then a second fold over the months that
  synthesizes quarter and year summary rows under their own constants.

ROLLUP POLICY:
  Summary rows are recomputed from summed raw counts, never averaged
  from the monthly indices. Averaging indices breaks under the varying
  K constants; summing counts and re-dividing does not. Headcount is
  the one exception: it is averaged, because workers are a level, not
  a flow.

ORDERING:
  Rows are assembled quarter block by quarter block (three months, then
  the quarter summary) and stable-sorted by rank. A quarter summary
  shares its rank with the month that follows the quarter; block
  insertion order keeps the summary first among ties. The annual row
  ranks 99 and lands last.

SEE ALSO:
  - types.go: Record and row definitions
  - indicator/calendar.go: Ranks, quarters and captions
*/
package reactive

import (
	"sort"

	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// ENGINE
// =============================================================================

// Engine computes the reactive report. It is stateless between calls:
// Process owns its working data exclusively and returns fresh tables.
type Engine struct {
	constants indicator.NormalizationConstants
}

// NewEngine builds an engine with the given K constants. A zero value
// falls back to the IESS CD 513 defaults.
func NewEngine(constants indicator.NormalizationConstants) *Engine {
	if constants.IsZero() {
		constants = indicator.DefaultConstants()
	}
	return &Engine{constants: constants}
}

// Constants returns the K constants the engine computes with.
func (e *Engine) Constants() indicator.NormalizationConstants {
	return e.constants
}

// Process computes the report and chart tables from the given records.
// The input slice is not modified.
func (e *Engine) Process(records []MonthlyRecord) (ReportTable, ChartTable, error) {
	if len(records) == 0 {
		return ReportTable{}, ChartTable{}, indicator.ErrEmptyInput
	}

	months := e.monthRows(records)
	report := e.withSummaries(months)

	chart := ChartTable{
		Months: make([]string, 0, len(months)),
		IF:     make([]float64, 0, len(months)),
		IG:     make([]float64, 0, len(months)),
		TR:     make([]float64, 0, len(months)),
	}
	for _, row := range report.Rows {
		if row.Kind != RowMonth {
			continue
		}
		chart.Months = append(chart.Months, row.Label)
		chart.IF = append(chart.IF, row.IF)
		chart.IG = append(chart.IG, row.IG)
		chart.TR = append(chart.TR, row.TR)
	}

	return report, chart, nil
}

// =============================================================================
// MONTH PASS
// =============================================================================

// monthRows is the first pass: one computed row per input record, in
// calendar order, under the monthly K constant.
func (e *Engine) monthRows(records []MonthlyRecord) []IndicatorRow {
	k := e.constants.Monthly

	rows := make([]IndicatorRow, len(records))
	for i, rec := range records {
		month := indicator.NormalizeMonth(rec.Month)
		hours := indicator.DeriveMonthlyHours(rec.Hours, rec.Workers, rec.Overtime)
		injuries := rec.TotalInjuries()

		rows[i] = IndicatorRow{
			Kind:                  RowMonth,
			Label:                 month,
			Order:                 indicator.MonthRank(month),
			Workers:               rec.Workers,
			Hours:                 hours,
			Overtime:              rec.Overtime,
			AccidentsWithLeave:    rec.AccidentsWithLeave,
			AccidentsWithoutLeave: rec.AccidentsWithoutLeave,
			Illnesses:             rec.Illnesses,
			TotalInjuries:         injuries,
			LostDays:              rec.LostDays,
			IF:                    indicator.SafeDivide(injuries*k, hours),
			IG:                    indicator.SafeDivide(rec.LostDays*k, hours),
			TR:                    indicator.SafeDivide(rec.LostDays, injuries),
			K:                     k,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Order < rows[j].Order })
	return rows
}

// =============================================================================
// ROLLUP PASS
// =============================================================================

// withSummaries is the second pass: it walks the quarters, emits each
// quarter's months followed by the quarter summary, appends whatever
// months belong to no quarter, then the annual summary, and stable-sorts
// the lot by rank.
func (e *Engine) withSummaries(months []IndicatorRow) ReportTable {
	rows := make([]IndicatorRow, 0, len(months)+5)
	claimed := make(map[int]bool, len(months))

	for _, q := range indicator.Quarters {
		var block []IndicatorRow
		for i, m := range months {
			if q.Contains(m.Label) {
				block = append(block, m)
				claimed[i] = true
			}
		}
		rows = append(rows, block...)
		if len(block) > 0 {
			rows = append(rows, e.summaryRow(block, q.Label, RowQuarter, e.constants.Quarterly, q.Rank()))
		}
	}

	// Unrecognized month names rank 99 and trail the calendar.
	for i, m := range months {
		if !claimed[i] {
			rows = append(rows, m)
		}
	}

	rows = append(rows, e.summaryRow(months, indicator.YearLabel, RowYear, e.constants.Yearly, indicator.YearRank))

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Order < rows[j].Order })
	return ReportTable{Rows: rows}
}

// summaryRow aggregates a period's month rows and recomputes the indices
// under the period's own K constant.
func (e *Engine) summaryRow(period []IndicatorRow, label string, kind RowKind, k float64, order int) IndicatorRow {
	row := IndicatorRow{Kind: kind, Label: label, Order: order, K: k}

	for _, m := range period {
		row.Workers += m.Workers
		row.Hours += m.Hours
		row.Overtime += m.Overtime
		row.AccidentsWithLeave += m.AccidentsWithLeave
		row.AccidentsWithoutLeave += m.AccidentsWithoutLeave
		row.Illnesses += m.Illnesses
		row.TotalInjuries += m.TotalInjuries
		row.LostDays += m.LostDays
	}
	if n := float64(len(period)); n > 0 {
		row.Workers = row.Workers / n
	}

	row.IF = indicator.SafeDivide(row.TotalInjuries*k, row.Hours)
	row.IG = indicator.SafeDivide(row.LostDays*k, row.Hours)
	row.TR = indicator.SafeDivide(row.LostDays, row.TotalInjuries)
	return row
}
