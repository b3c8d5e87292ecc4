package reactive

import "github.com/preventia/indicator-engine/indicator"

// =============================================================================
// SUMMARY STATISTICS
// =============================================================================

// Summary condenses a finished report for dashboard headline cards.
// Totals and means cover the month rows only; the annual indices come
// straight off the annual summary row.
type Summary struct {
	TotalAccidentsWithLeave    float64
	TotalAccidentsWithoutLeave float64
	TotalIllnesses             float64
	TotalInjuries              float64
	TotalLostDays              float64
	TotalHours                 float64

	MeanIF float64
	MeanIG float64
	MeanTR float64

	AnnualIF float64
	AnnualIG float64

	MonthsWithoutAccidents int
	WorstMonth             string // month with the highest IF, empty when all are zero
}

// Stats derives the summary from a report produced by Process. Pure:
// the report is not modified.
func Stats(report ReportTable) Summary {
	var s Summary
	months := report.MonthRows()

	var sumIF, sumIG, sumTR, worstIF float64
	for _, m := range months {
		s.TotalAccidentsWithLeave += m.AccidentsWithLeave
		s.TotalAccidentsWithoutLeave += m.AccidentsWithoutLeave
		s.TotalIllnesses += m.Illnesses
		s.TotalInjuries += m.TotalInjuries
		s.TotalLostDays += m.LostDays
		s.TotalHours += m.Hours
		sumIF += m.IF
		sumIG += m.IG
		sumTR += m.TR
		if m.TotalInjuries == 0 {
			s.MonthsWithoutAccidents++
		}
		if m.IF > worstIF {
			worstIF = m.IF
			s.WorstMonth = m.Label
		}
	}

	n := float64(len(months))
	s.MeanIF = indicator.SafeDivide(sumIF, n)
	s.MeanIG = indicator.SafeDivide(sumIG, n)
	s.MeanTR = indicator.SafeDivide(sumTR, n)

	if year, ok := report.YearRow(); ok {
		s.AnnualIF = year.IF
		s.AnnualIG = year.IG
	}
	return s
}
