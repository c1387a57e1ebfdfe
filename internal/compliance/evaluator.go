// Package compliance scores a vehicle's gap analysis against its declared
// category's threshold. Severity is driven by the average gap; the observed
// max gap is carried through for display only.
package compliance

import (
	"math"

	"kerbside/internal/domain"
)

// Severity bands, ordered by the ratio of average gap to the allowed
// threshold. Thresholds are data so they can be tested in isolation:
//
//	ratio <= 1.00          COMPLIANT  score 100
//	1.00 < ratio <= 1.25   WARNING    100 − (ratio−1)·40, so 100 → 90
//	1.25 < ratio <= 1.75   CRITICAL   90 − (ratio−1.25)·120, so 90 → 30
//	ratio > 1.75           VIOLATION  floors at 10
//
// The WARNING and CRITICAL segments join continuously at their boundaries;
// hosts are shown the numeric excess, so the breakpoints are exact.
type band struct {
	maxRatio float64 // inclusive upper bound; the last band is open-ended
	severity domain.Severity
	score    func(ratio float64) float64
}

var bands = []band{
	{1.0, domain.SeverityCompliant, func(float64) float64 { return 100 }},
	{1.25, domain.SeverityWarning, func(r float64) float64 { return 100 - (r-1)*40 }},
	{1.75, domain.SeverityCritical, func(r float64) float64 { return 90 - (r-1.25)*120 }},
	{math.Inf(1), domain.SeverityViolation, func(float64) float64 { return 10 }},
}

// Evaluate classifies the analysis against the category threshold. Zero
// usable intervals yield severity COMPLIANT with a full score but the
// InsufficientData marker set, so downstream consumers never present "not
// enough history" as a clean record.
func Evaluate(vehicleID string, analysis domain.GapAnalysis, category domain.DeclarationCategory) domain.ComplianceAssessment {
	out := domain.ComplianceAssessment{
		VehicleID:       vehicleID,
		DeclarationID:   category.ID,
		AverageGapMiles: analysis.AverageGapMiles,
		MaxGapMiles:     analysis.MaxGapMiles,
		AnomalyCount:    analysis.AnomalyCount,
		TotalIntervals:  analysis.TotalIntervals,
	}
	if analysis.InsufficientData {
		out.Severity = domain.SeverityCompliant
		out.ComplianceScore = 100
		out.InsufficientData = true
		return out
	}

	allowed := float64(category.MaxGapMiles)
	actual := analysis.AverageGapMiles
	ratio := actual / allowed
	for _, b := range bands {
		if ratio <= b.maxRatio {
			out.Severity = b.severity
			out.ComplianceScore = clamp(b.score(ratio), 0, 100)
			break
		}
	}
	if actual > allowed {
		out.ExcessMiles = int(math.Round(actual - allowed))
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
