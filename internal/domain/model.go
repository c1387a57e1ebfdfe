package domain

import "time"

// Core domain models. The trip ledger, claims store, and vehicle registry
// own the authoritative records; everything derived here is recomputed per
// request and never cached as a source of truth.

// DeclarationID identifies a usage declaration category.
type DeclarationID string

const (
	DeclarationRental   DeclarationID = "RENTAL"
	DeclarationPersonal DeclarationID = "PERSONAL"
	DeclarationMixed    DeclarationID = "MIXED"
)

// DeclarationCategory is a catalog entry describing a usage declaration.
// Entries are immutable and seeded at startup; MaxGapMiles is the allowed
// average mileage gap before a vehicle is considered non-compliant.
type DeclarationCategory struct {
	ID             DeclarationID `json:"id"`
	Label          string        `json:"label"`
	Description    string        `json:"description"`
	MaxGapMiles    int           `json:"max_gap_miles"`
	TaxImplication string        `json:"tax_implication"`
	InsuranceNote  string        `json:"insurance_note"`
	ClaimImpact    string        `json:"claim_impact"`
}

// Vehicle is the slice of the vehicle record this engine reads. The
// declaration is mutable only through the lock-guarded update path.
type Vehicle struct {
	ID            string        `json:"id"`
	HostID        string        `json:"host_id"`
	DeclarationID DeclarationID `json:"declaration_id"`
	InsuranceType string        `json:"insurance_type"` // verified status as recorded, e.g. "commercial"
}

// OdometerReading is one trip's odometer record from the trip ledger.
type OdometerReading struct {
	TripID       string    `json:"trip_id"`
	VehicleID    string    `json:"vehicle_id"`
	StartMileage int       `json:"start_mileage"`
	EndMileage   int       `json:"end_mileage"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

// MileageGapRecord is the miles accrued between two consecutive trips.
type MileageGapRecord struct {
	PrevTripID string `json:"prev_trip_id"`
	NextTripID string `json:"next_trip_id"`
	GapMiles   int    `json:"gap_miles"`
	Anomalous  bool   `json:"anomalous"`
}

// GapAnalysis aggregates the gap records for one vehicle. Intervals with a
// negative computed gap (odometer rollback upstream) are excluded from the
// records and every aggregate, and counted in DiscardedIntervals.
type GapAnalysis struct {
	Records            []MileageGapRecord `json:"records"`
	AverageGapMiles    float64            `json:"average_gap_miles"`
	MaxGapMiles        int                `json:"max_gap_miles"`
	AnomalyCount       int                `json:"anomaly_count"`
	TotalIntervals     int                `json:"total_intervals"`
	DiscardedIntervals int                `json:"discarded_intervals"`
	// InsufficientData is set when there are no usable intervals: fewer
	// than two trips, or every interval discarded.
	InsufficientData bool `json:"insufficient_data"`
}

// Severity classifies how far a vehicle's average gap sits from its
// declared threshold.
type Severity string

const (
	SeverityCompliant Severity = "COMPLIANT"
	SeverityWarning   Severity = "WARNING"
	SeverityCritical  Severity = "CRITICAL"
	SeverityViolation Severity = "VIOLATION"
)

// ComplianceAssessment scores a vehicle's mileage history against its
// declared category. Severity is driven by the average gap; MaxGapMiles is
// observed and reported for display only.
type ComplianceAssessment struct {
	VehicleID       string        `json:"vehicle_id"`
	DeclarationID   DeclarationID `json:"declaration_id"`
	AverageGapMiles float64       `json:"average_gap_miles"`
	MaxGapMiles     int           `json:"max_gap_miles"`
	AnomalyCount    int           `json:"anomaly_count"`
	TotalIntervals  int           `json:"total_intervals"`
	ComplianceScore float64       `json:"compliance_score"`
	// ExcessMiles is round(average − allowed), shown to hosts; 0 when
	// within the threshold.
	ExcessMiles int      `json:"excess_miles"`
	Severity    Severity `json:"severity"`
	// InsufficientData distinguishes "no usable history" from a true
	// compliant score so the UI never claims false confidence.
	InsufficientData bool `json:"insufficient_data"`
}

// Tier labels an overall integrity score.
type Tier string

const (
	TierExcellent      Tier = "EXCELLENT"
	TierGood           Tier = "GOOD"
	TierFair           Tier = "FAIR"
	TierNeedsAttention Tier = "NEEDS_ATTENTION"
)

// IntegrityScoreBreakdown is the final artifact shown to hosts: the
// compliance score less the gap and claim penalties, clamped to [0,100].
type IntegrityScoreBreakdown struct {
	ComplianceScore float64 `json:"compliance_score"`
	GapPenalty      float64 `json:"gap_penalty"`
	ClaimPenalty    float64 `json:"claim_penalty"`
	OverallScore    float64 `json:"overall_score"`
	Tier            Tier    `json:"tier"`
}

// InsuranceType is the normalized verified insurance classification.
type InsuranceType string

const (
	InsuranceNone       InsuranceType = "NONE"
	InsuranceP2P        InsuranceType = "P2P"
	InsuranceCommercial InsuranceType = "COMMERCIAL"
)

// InsuranceTier maps a verified insurance type to the host's revenue split.
type InsuranceTier struct {
	Type                InsuranceType `json:"type"`
	RevenueSplitPercent int           `json:"revenue_split_percent"`
}

// ClaimStatus is the closed set of claim states this engine understands.
type ClaimStatus string

const (
	ClaimPending              ClaimStatus = "PENDING"
	ClaimUnderReview          ClaimStatus = "UNDER_REVIEW"
	ClaimGuestResponsePending ClaimStatus = "GUEST_RESPONSE_PENDING"
	ClaimApproved             ClaimStatus = "APPROVED"
	ClaimDenied               ClaimStatus = "DENIED"
	ClaimPaid                 ClaimStatus = "PAID"
	ClaimResolved             ClaimStatus = "RESOLVED"
)

// OpenClaimStatuses are the claim states that lock declaration edits.
var OpenClaimStatuses = []ClaimStatus{
	ClaimPending,
	ClaimUnderReview,
	ClaimGuestResponsePending,
}

// Open reports whether the status locks declaration edits.
func (s ClaimStatus) Open() bool {
	for _, o := range OpenClaimStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// Claim is the slice of a claims-store record this engine reads.
type Claim struct {
	ID            string      `json:"id"`
	VehicleID     string      `json:"vehicle_id"`
	Status        ClaimStatus `json:"status"`
	FiledAt       time.Time   `json:"filed_at"`
	EstimatedCost float64     `json:"estimated_cost"`
}

// ClaimLockState reports whether declaration edits are currently blocked.
type ClaimLockState struct {
	HasActiveClaim bool   `json:"has_active_claim"`
	ActiveClaim    *Claim `json:"active_claim,omitempty"`
	Locked         bool   `json:"locked"`
}

// VehicleAssessment is the single read entry point's result: everything the
// host dashboard cards consume for one vehicle.
type VehicleAssessment struct {
	VehicleID  string                  `json:"vehicle_id"`
	Compliance ComplianceAssessment    `json:"compliance"`
	Integrity  IntegrityScoreBreakdown `json:"integrity"`
	Insurance  InsuranceTier           `json:"insurance"`
	Lock       ClaimLockState          `json:"lock"`
}
