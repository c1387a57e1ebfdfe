package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"kerbside/internal/domain"
	"kerbside/internal/ports"
)

// EnqueueFleet queues one sweep job per vehicle without a pending job.
func (db *DB) EnqueueFleet(ctx context.Context) (int, error) {
	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO sweep_jobs (vehicle_id)
		SELECT v.id FROM vehicles v
		WHERE NOT EXISTS (
			SELECT 1 FROM sweep_jobs j
			WHERE j.vehicle_id = v.id AND j.status IN ('queued', 'running')
		)
	`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ClaimNext selects the next queued sweep job using SKIP LOCKED and marks it
// running, so concurrent workers never claim the same vehicle.
func (db *DB) ClaimNext(ctx context.Context) (job ports.SweepJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		SELECT id, vehicle_id FROM sweep_jobs
		WHERE status = 'queued'
		ORDER BY queued_at
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&job.ID, &job.VehicleID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE sweep_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
	`, job.ID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := db.Pool.Exec(ctx, `
		UPDATE sweep_jobs SET status='completed', finished_at=now() WHERE id=$1
	`, jobID)
	return err
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := db.Pool.Exec(ctx, `
		UPDATE sweep_jobs SET status='failed', finished_at=now(), failure_reason=$2 WHERE id=$1
	`, jobID, reason)
	return err
}

// RecordScore upserts the latest integrity result for a vehicle.
func (db *DB) RecordScore(ctx context.Context, vehicleID string, score domain.IntegrityScoreBreakdown) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO integrity_scores (vehicle_id, compliance_score, gap_penalty, claim_penalty, overall_score, tier, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (vehicle_id) DO UPDATE SET
			compliance_score = EXCLUDED.compliance_score,
			gap_penalty = EXCLUDED.gap_penalty,
			claim_penalty = EXCLUDED.claim_penalty,
			overall_score = EXCLUDED.overall_score,
			tier = EXCLUDED.tier,
			computed_at = EXCLUDED.computed_at
	`, vehicleID, score.ComplianceScore, score.GapPenalty, score.ClaimPenalty, score.OverallScore, score.Tier)
	return err
}
