package proactive

import "github.com/preventia/indicator-engine/indicator"

// =============================================================================
// SUMMARY STATISTICS
// =============================================================================

// IndicatorStats summarizes one family across the processed months.
type IndicatorStats struct {
	Mean          float64
	Min           float64
	Max           float64
	MeetingTarget int // months where this family alone reached the target
}

// Summary condenses an indicator table for dashboard headline cards.
type Summary struct {
	Target        float64
	MonthsMeeting int
	MonthsFailing int
	MeanIGTotal   float64
	Indicators    map[string]IndicatorStats
}

// Stats derives the summary from a table produced by Process.
func Stats(table IndicatorTable) Summary {
	s := Summary{Target: table.Target, Indicators: make(map[string]IndicatorStats, len(catalog))}

	var sumIG float64
	for _, row := range table.Rows {
		if row.MeetsTarget {
			s.MonthsMeeting++
		} else {
			s.MonthsFailing++
		}
		sumIG += row.IGTotal
	}
	s.MeanIGTotal = indicator.SafeDivide(sumIG, float64(len(table.Rows)))

	for _, code := range Codes() {
		var st IndicatorStats
		for i, row := range table.Rows {
			v := row.Value(code)
			if i == 0 || v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
			st.Mean += v
			if v >= table.Target {
				st.MeetingTarget++
			}
		}
		st.Mean = indicator.SafeDivide(st.Mean, float64(len(table.Rows)))
		s.Indicators[code] = st
	}
	return s
}
