package indicator_test

import (
	"testing"

	"github.com/preventia/indicator-engine/indicator"
)

func TestMonthRank_CalendarOrder(t *testing.T) {
	if got := indicator.MonthRank("enero"); got != 0 {
		t.Errorf("enero rank = %d, want 0", got)
	}
	if got := indicator.MonthRank("diciembre"); got != 11 {
		t.Errorf("diciembre rank = %d, want 11", got)
	}
}

func TestMonthRank_NormalizesCaseAndSpace(t *testing.T) {
	if got := indicator.MonthRank("  Marzo "); got != 2 {
		t.Errorf("' Marzo ' rank = %d, want 2", got)
	}
}

func TestMonthRank_UnknownRanksLast(t *testing.T) {
	if got := indicator.MonthRank("brumaire"); got != indicator.UnknownMonthRank {
		t.Errorf("unknown month rank = %d, want %d", got, indicator.UnknownMonthRank)
	}
}

func TestQuarters_CoverTheYearInOrder(t *testing.T) {
	seen := map[string]bool{}
	for qi, q := range indicator.Quarters {
		if q.Number != qi+1 {
			t.Errorf("quarter %d numbered %d", qi+1, q.Number)
		}
		for mi, m := range q.Months {
			if rank := indicator.MonthRank(m); rank != qi*3+mi {
				t.Errorf("quarter %d month %q has rank %d, want %d", q.Number, m, rank, qi*3+mi)
			}
			seen[m] = true
		}
	}
	if len(seen) != 12 {
		t.Errorf("quarters cover %d distinct months, want 12", len(seen))
	}
}

func TestQuarterRank_TiesWithFollowingMonth(t *testing.T) {
	// The first quarter's summary row shares rank 3 with abril; stable
	// sorting keeps the summary (inserted first) ahead of the month.
	q1 := indicator.Quarters[0]
	if q1.Rank() != indicator.MonthRank("abril") {
		t.Errorf("Q1 rank %d does not tie with abril rank %d", q1.Rank(), indicator.MonthRank("abril"))
	}
	q4 := indicator.Quarters[3]
	if q4.Rank() != 12 {
		t.Errorf("Q4 rank = %d, want 12", q4.Rank())
	}
}

func TestQuarterContains(t *testing.T) {
	q2 := indicator.Quarters[1]
	if !q2.Contains("Mayo") {
		t.Error("SEGUNDO TRIMESTRE should contain mayo")
	}
	if q2.Contains("enero") {
		t.Error("SEGUNDO TRIMESTRE should not contain enero")
	}
}
