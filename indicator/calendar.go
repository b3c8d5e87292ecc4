package indicator

import "strings"

// =============================================================================
// DOMAIN CALENDAR - Month ordering and quarter grouping
// =============================================================================

// Months is the domain calendar in canonical form: lowercase Spanish names,
// January first. Every ordering decision in both pipelines goes through
// this list.
var Months = [12]string{
	"enero", "febrero", "marzo",
	"abril", "mayo", "junio",
	"julio", "agosto", "septiembre",
	"octubre", "noviembre", "diciembre",
}

// UnknownMonthRank sorts unrecognized month names (and the annual summary
// row) after every calendar month and quarter.
const UnknownMonthRank = 99

// NormalizeMonth brings a month name to canonical form: lowercase, trimmed.
func NormalizeMonth(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MonthRank returns the calendar position of a normalized month name,
// 0 for enero through 11 for diciembre. Unrecognized names rank
// UnknownMonthRank and therefore sort last.
func MonthRank(name string) int {
	name = NormalizeMonth(name)
	for i, m := range Months {
		if m == name {
			return i
		}
	}
	return UnknownMonthRank
}

// =============================================================================
// QUARTERS AND ANNUAL ROW
// =============================================================================

// Quarter groups three consecutive calendar months under one summary label.
type Quarter struct {
	Number int
	Label  string
	Months [3]string
}

// Quarters in report order. Labels are the exact row captions regulation
// reports use.
var Quarters = [4]Quarter{
	{Number: 1, Label: "PRIMER TRIMESTRE", Months: [3]string{"enero", "febrero", "marzo"}},
	{Number: 2, Label: "SEGUNDO TRIMESTRE", Months: [3]string{"abril", "mayo", "junio"}},
	{Number: 3, Label: "TERCER TRIMESTRE", Months: [3]string{"julio", "agosto", "septiembre"}},
	{Number: 4, Label: "CUARTO TRIMESTRE", Months: [3]string{"octubre", "noviembre", "diciembre"}},
}

// Rank is the ordering key of the quarter's summary row. It equals the rank
// of the month that follows the quarter; a stable sort over rows inserted
// months-first keeps the summary ahead of that tied month.
func (q Quarter) Rank() int {
	return q.Number * 3
}

// Contains reports whether the normalized month name belongs to this quarter.
func (q Quarter) Contains(month string) bool {
	month = NormalizeMonth(month)
	for _, m := range q.Months {
		if m == month {
			return true
		}
	}
	return false
}

// YearLabel captions the annual summary row.
const YearLabel = "TOTAL AÑO"

// YearRank orders the annual summary row after everything else.
const YearRank = UnknownMonthRank
