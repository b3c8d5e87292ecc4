package reactive

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/preventia/indicator-engine/indicator"
)

// =============================================================================
// DEMONSTRATION DATA
// =============================================================================

// DemoRecords generates one year of plausible accident data for demos
// and manual testing. Deterministic for a given seed; Process never
// calls this on its own.
func DemoRecords(year int, seed int64) []MonthlyRecord {
	rng := rand.New(rand.NewSource(seed))

	records := make([]MonthlyRecord, 0, 12)
	for _, month := range indicator.Months {
		workers := float64(80 + rng.Intn(40))
		hours, _ := indicator.StandardMonthlyHours.Mul(decimal.NewFromFloat(workers)).Round(2).Float64()

		records = append(records, MonthlyRecord{
			Month:                 month,
			Year:                  year,
			Workers:               workers,
			Hours:                 hours,
			Overtime:              float64(rng.Intn(500)),
			AccidentsWithLeave:    pickWeighted(rng, []float64{0, 0, 0, 1, 1, 2}, []float64{0.40, 0.20, 0.15, 0.15, 0.07, 0.03}),
			AccidentsWithoutLeave: pickWeighted(rng, []float64{0, 1, 2, 3}, []float64{0.50, 0.30, 0.15, 0.05}),
			Illnesses:             pickWeighted(rng, []float64{0, 0, 1}, []float64{0.70, 0.20, 0.10}),
			LostDays:              pickWeighted(rng, []float64{0, 0, 2, 5, 10, 15}, []float64{0.40, 0.25, 0.15, 0.10, 0.07, 0.03}),
		})
	}
	return records
}

// pickWeighted draws one value under the given probabilities. Weights
// are assumed to sum to 1; the last value absorbs rounding slack.
func pickWeighted(rng *rand.Rand, values, weights []float64) float64 {
	roll := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if roll < acc {
			return values[i]
		}
	}
	return values[len(values)-1]
}
