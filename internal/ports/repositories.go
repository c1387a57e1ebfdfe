package ports

import (
	"context"

	"kerbside/internal/domain"
)

// TripLedger reads ordered odometer history from the external trip ledger.
type TripLedger interface {
	ListOdometerReadings(ctx context.Context, vehicleID string) ([]domain.OdometerReading, error)
}

// ClaimsStore reads claim state from the external claims subsystem.
type ClaimsStore interface {
	// GetActiveClaim returns the vehicle's open claim, or nil when none.
	GetActiveClaim(ctx context.Context, vehicleID string) (*domain.Claim, error)
}

// VehicleStore reads vehicle records and commits declaration changes. The
// declaration write path must re-validate the claim lock atomically with
// the update so a claim filed in the race window still blocks the edit.
type VehicleStore interface {
	GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error)
	UpdateDeclaration(ctx context.Context, vehicleID string, newID domain.DeclarationID, actorID string) error
}
