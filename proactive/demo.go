package proactive

import (
	"math/rand"

	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// DEMONSTRATION DATA
// =============================================================================

// DemoRecords generates one year of plausible prevention-activity data
// for demos and manual testing. Planned counts stay at least 1 so the
// demo never exercises the zero-denominator path; executed counts run
// between roughly 70% and 100% of plan. Deterministic for a given seed.
func DemoRecords(year int, seed int64) []MonthlyRecord {
	rng := rand.New(rand.NewSource(seed))

	between := func(lo, hi int) float64 {
		return float64(lo + rng.Intn(hi-lo))
	}
	share := func(base float64, lo, hi float64) float64 {
		return float64(int(base * (lo + rng.Float64()*(hi-lo))))
	}

	records := make([]MonthlyRecord, 0, 12)
	for _, month := range indicator.Months {
		artProg := between(8, 15)
		opasProg := between(10, 20)
		opasPrev := between(30, 50)
		dpsPlan := between(4, 8)
		dpsPrev := between(20, 40)
		dsDet := between(5, 15)
		entProg := between(15, 30)
		oseaApl := between(10, 20)
		caiProp := between(3, 8)
		efTot := between(15, 25)

		records = append(records, MonthlyRecord{
			Month:                month,
			Year:                 year,
			ARTProgrammed:        artProg,
			ARTExecuted:          share(artProg, 0.70, 1.00),
			OPASProgrammed:       opasProg,
			OPASRealized:         share(opasProg, 0.70, 1.00),
			OPASExpectedPeople:   opasPrev,
			OPASCompliantPeople:  share(opasPrev, 0.75, 0.95),
			DPSPlanned:           dpsPlan,
			DPSHeld:              share(dpsPlan, 0.75, 1.00),
			DPSExpectedAttendees: dpsPrev,
			DPSAttendees:         share(dpsPrev, 0.80, 1.00),
			DSDetected:           dsDet,
			DSEliminated:         share(dsDet, 0.70, 0.95),
			TrainingProgrammed:   entProg,
			TrainingTrained:      share(entProg, 0.75, 1.00),
			OSEAApplicable:       oseaApl,
			OSEAMet:              share(oseaApl, 0.75, 0.98),
			CAIProposed:          caiProp,
			CAIImplemented:       share(caiProp, 0.70, 1.00),
			EFTotal:              efTot,
			EFAudited:            share(efTot, 0.75, 0.95),
		})
	}
	return records
}
