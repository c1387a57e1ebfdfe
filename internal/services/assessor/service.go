package assessor

import (
	"context"
	"errors"
	"fmt"

	"kerbside/internal/catalog"
	"kerbside/internal/compliance"
	"kerbside/internal/domain"
	"kerbside/internal/gap"
	"kerbside/internal/insurance"
	"kerbside/internal/integrity"
	"kerbside/internal/ports"
)

// Service assembles the per-vehicle integrity assessment: gap analysis over
// the trip ledger, compliance against the declared category, the integrity
// score with claim state folded in, and the insurance tier. Everything is
// recomputed from the authoritative stores on each call.
type Service struct {
	trips    ports.TripLedger
	claims   ports.ClaimsStore
	vehicles ports.VehicleStore
}

func New(trips ports.TripLedger, claims ports.ClaimsStore, vehicles ports.VehicleStore) *Service {
	return &Service{trips: trips, claims: claims, vehicles: vehicles}
}

// AssessVehicle builds the full assessment. A failed fetch from any store
// propagates as DataUnavailableError; it is never treated as zero trips or
// no claim.
func (s *Service) AssessVehicle(ctx context.Context, vehicleID string) (domain.VehicleAssessment, error) {
	var out domain.VehicleAssessment

	veh, err := s.vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return out, err
		}
		return out, &domain.DataUnavailableError{Store: "vehicle store", Err: err}
	}
	category, ok := catalog.Lookup(veh.DeclarationID)
	if !ok {
		return out, fmt.Errorf("vehicle %s has unknown declaration %q", vehicleID, veh.DeclarationID)
	}

	readings, err := s.trips.ListOdometerReadings(ctx, vehicleID)
	if err != nil {
		return out, &domain.DataUnavailableError{Store: "trip ledger", Err: err}
	}
	claim, err := s.claims.GetActiveClaim(ctx, vehicleID)
	if err != nil {
		return out, &domain.DataUnavailableError{Store: "claims store", Err: err}
	}

	analysis := gap.Analyze(readings, category)
	assessment := compliance.Evaluate(vehicleID, analysis, category)
	lock := domain.ClaimLockState{
		HasActiveClaim: claim != nil,
		ActiveClaim:    claim,
		Locked:         claim != nil,
	}

	out = domain.VehicleAssessment{
		VehicleID:  vehicleID,
		Compliance: assessment,
		Integrity:  integrity.Compute(assessment, category, lock.HasActiveClaim),
		Insurance:  insurance.ResolveTier(veh.InsuranceType),
		Lock:       lock,
	}
	return out, nil
}
