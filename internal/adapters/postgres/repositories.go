package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"kerbside/internal/domain"
)

// TripLedger
func (db *DB) ListOdometerReadings(ctx context.Context, vehicleID string) ([]domain.OdometerReading, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT trip_id, vehicle_id, start_mileage, end_mileage, started_at, ended_at
		FROM trip_odometer_readings
		WHERE vehicle_id = $1
		ORDER BY started_at
	`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OdometerReading
	for rows.Next() {
		var r domain.OdometerReading
		if err := rows.Scan(&r.TripID, &r.VehicleID, &r.StartMileage, &r.EndMileage, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func openStatuses() []string {
	open := make([]string, len(domain.OpenClaimStatuses))
	for i, s := range domain.OpenClaimStatuses {
		open[i] = string(s)
	}
	return open
}

// ClaimsStore
func (db *DB) GetActiveClaim(ctx context.Context, vehicleID string) (*domain.Claim, error) {
	var c domain.Claim
	err := db.Pool.QueryRow(ctx, `
		SELECT id, vehicle_id, status, filed_at, estimated_cost
		FROM claims
		WHERE vehicle_id = $1 AND status = ANY($2)
		ORDER BY filed_at DESC
		LIMIT 1
	`, vehicleID, openStatuses()).Scan(&c.ID, &c.VehicleID, &c.Status, &c.FiledAt, &c.EstimatedCost)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// VehicleStore
func (db *DB) GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := db.Pool.QueryRow(ctx, `
		SELECT id, host_id, declaration_id, insurance_type
		FROM vehicles
		WHERE id = $1
	`, vehicleID).Scan(&v.ID, &v.HostID, &v.DeclarationID, &v.InsuranceType)
	if errors.Is(err, pgx.ErrNoRows) {
		return v, domain.ErrNotFound
	}
	return v, err
}

// UpdateDeclaration commits a declaration change only if no claim is open at
// commit time. The vehicle row is locked and the claims table re-checked
// inside the same transaction, so a claim filed between the service-level
// guard check and this commit still blocks the edit.
func (db *DB) UpdateDeclaration(ctx context.Context, vehicleID string, newID domain.DeclarationID, actorID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var current domain.DeclarationID
	err = tx.QueryRow(ctx, `
		SELECT declaration_id FROM vehicles WHERE id = $1 FOR UPDATE
	`, vehicleID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		err = domain.ErrNotFound
		return err
	}
	if err != nil {
		return err
	}

	var blocking domain.Claim
	err = tx.QueryRow(ctx, `
		SELECT id, status, filed_at FROM claims
		WHERE vehicle_id = $1 AND status = ANY($2)
		ORDER BY filed_at DESC
		LIMIT 1
	`, vehicleID, openStatuses()).Scan(&blocking.ID, &blocking.Status, &blocking.FiledAt)
	if err == nil {
		err = &domain.DeclarationLockedError{
			ClaimID:     blocking.ID,
			ClaimStatus: blocking.Status,
			FiledAt:     blocking.FiledAt,
		}
		return err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	err = nil

	if current == newID {
		return nil
	}
	if _, err = tx.Exec(ctx, `
		UPDATE vehicles SET declaration_id = $2, declaration_updated_at = now() WHERE id = $1
	`, vehicleID, newID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO declaration_changes (vehicle_id, actor_id, from_declaration, to_declaration)
		VALUES ($1, $2, $3, $4)
	`, vehicleID, actorID, current, newID)
	return err
}
