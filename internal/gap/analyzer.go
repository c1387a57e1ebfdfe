// Package gap computes mileage gaps between consecutive trips. A gap is the
// miles accrued on a vehicle between the end of one trip and the start of
// the next, used as a proxy for undeclared personal use.
package gap

import (
	"log"
	"sort"

	"kerbside/internal/domain"
)

// Analyze walks consecutive trip pairs in chronological order and computes
// per-interval gaps plus aggregates. Readings are sorted by start time
// before walking; an interval whose computed gap is negative signals an
// odometer rollback or data-entry error upstream and is logged and excluded
// from the records and every aggregate rather than corrupting the score.
func Analyze(readings []domain.OdometerReading, category domain.DeclarationCategory) domain.GapAnalysis {
	if len(readings) < 2 {
		return domain.GapAnalysis{InsufficientData: true}
	}

	ordered := make([]domain.OdometerReading, len(readings))
	copy(ordered, readings)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.Before(ordered[j].StartedAt)
	})

	var out domain.GapAnalysis
	sum := 0
	for i := 1; i < len(ordered); i++ {
		prev, next := ordered[i-1], ordered[i]
		miles := next.StartMileage - prev.EndMileage
		if miles < 0 {
			log.Printf("[gap] vehicle %s: negative gap %d between trips %s and %s, excluding interval",
				next.VehicleID, miles, prev.TripID, next.TripID)
			out.DiscardedIntervals++
			continue
		}
		rec := domain.MileageGapRecord{
			PrevTripID: prev.TripID,
			NextTripID: next.TripID,
			GapMiles:   miles,
			Anomalous:  miles > category.MaxGapMiles,
		}
		out.Records = append(out.Records, rec)
		out.TotalIntervals++
		sum += miles
		if miles > out.MaxGapMiles {
			out.MaxGapMiles = miles
		}
		if rec.Anomalous {
			out.AnomalyCount++
		}
	}

	if out.TotalIntervals == 0 {
		// Every interval was discarded; there is nothing to average.
		out.InsufficientData = true
		return out
	}
	out.AverageGapMiles = float64(sum) / float64(out.TotalIntervals)
	return out
}
