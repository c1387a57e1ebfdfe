package declarations

import (
	"context"
	"errors"

	"kerbside/internal/catalog"
	"kerbside/internal/domain"
	"kerbside/internal/ports"
)

// Service gates declaration changes behind the claim lock. Declarations
// affect claim adjudication, so edits are forbidden while a claim is open;
// the check here gives a fast, explainable refusal and the store's
// conditional update re-validates the lock atomically at commit time.
type Service struct {
	vehicles ports.VehicleStore
	claims   ports.ClaimsStore
}

func New(vehicles ports.VehicleStore, claims ports.ClaimsStore) *Service {
	return &Service{vehicles: vehicles, claims: claims}
}

// UpdateDeclaration validates the request, consults the claim lock, and
// delegates the mutation to the vehicle store. The actor is explicit on
// every call; the engine never reads ambient session state. While locked the
// refusal applies to every requested value, including the current one.
func (s *Service) UpdateDeclaration(ctx context.Context, vehicleID string, newID domain.DeclarationID, actorID string) error {
	if actorID == "" {
		return &domain.ValidationError{Field: "actor_id", Reason: "required"}
	}
	if !catalog.Valid(newID) {
		return &domain.ValidationError{Field: "declaration_id", Reason: "unknown declaration " + string(newID)}
	}

	veh, err := s.vehicles.GetVehicle(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.DataUnavailableError{Store: "vehicle store", Err: err}
	}

	claim, err := s.claims.GetActiveClaim(ctx, vehicleID)
	if err != nil {
		return &domain.DataUnavailableError{Store: "claims store", Err: err}
	}
	if claim != nil {
		return &domain.DeclarationLockedError{
			ClaimID:     claim.ID,
			ClaimStatus: claim.Status,
			FiledAt:     claim.FiledAt,
		}
	}

	if veh.DeclarationID == newID {
		// Idempotent no-op.
		return nil
	}
	return s.vehicles.UpdateDeclaration(ctx, vehicleID, newID, actorID)
}
