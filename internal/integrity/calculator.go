// Package integrity folds the compliance score, gap excess, and claim
// status into the single 0–100 integrity score shown to hosts.
package integrity

import "kerbside/internal/domain"

const (
	// gapPenaltyPerExcess deducts 20 points for every 100% the average gap
	// exceeds the declared threshold; the deduction is continuous across
	// severity boundaries rather than step-wise.
	gapPenaltyPerExcess = 20.0

	// gapPenaltyCap bounds the gap deduction so it cannot drown out the
	// claim signal.
	gapPenaltyCap = 30.0

	// claimPenaltyPoints is the fixed deduction while a claim is open. An
	// open claim always depresses integrity regardless of mileage
	// compliance; it is additive so a perfect compliance score can never
	// neutralize it.
	claimPenaltyPoints = 15.0
)

// Tier cutoffs, ordered highest first.
var tiers = []struct {
	min  float64
	tier domain.Tier
}{
	{90, domain.TierExcellent},
	{75, domain.TierGood},
	{60, domain.TierFair},
	{0, domain.TierNeedsAttention},
}

// Compute derives the integrity breakdown. The result is monotonic in each
// input: a worse compliance score, a larger gap excess, or an open claim
// never raises the overall score.
func Compute(assessment domain.ComplianceAssessment, category domain.DeclarationCategory, hasActiveClaim bool) domain.IntegrityScoreBreakdown {
	out := domain.IntegrityScoreBreakdown{ComplianceScore: assessment.ComplianceScore}

	if allowed := float64(category.MaxGapMiles); allowed > 0 && assessment.AverageGapMiles > allowed {
		excessRatio := (assessment.AverageGapMiles - allowed) / allowed
		out.GapPenalty = excessRatio * gapPenaltyPerExcess
		if out.GapPenalty > gapPenaltyCap {
			out.GapPenalty = gapPenaltyCap
		}
	}
	if hasActiveClaim {
		out.ClaimPenalty = claimPenaltyPoints
	}

	overall := assessment.ComplianceScore - out.GapPenalty - out.ClaimPenalty
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	out.OverallScore = overall
	out.Tier = TierFor(overall)
	return out
}

// TierFor maps an overall score to its tier label.
func TierFor(score float64) domain.Tier {
	for _, t := range tiers {
		if score >= t.min {
			return t.tier
		}
	}
	return domain.TierNeedsAttention
}
