package ports

import (
	"context"

	"kerbside/internal/domain"
)

// Assessor produces the full integrity assessment for one vehicle.
type Assessor interface {
	AssessVehicle(ctx context.Context, vehicleID string) (domain.VehicleAssessment, error)
}

// Declarations guards and applies usage declaration changes.
type Declarations interface {
	UpdateDeclaration(ctx context.Context, vehicleID string, newID domain.DeclarationID, actorID string) error
}
