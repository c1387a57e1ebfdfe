package ports

import (
	"context"

	"kerbside/internal/domain"
)

type SweepJob struct {
	ID        string
	VehicleID string
}

// SweepJobStore tracks fleet-wide rescoring jobs and their results. Each
// vehicle's job is independent; one failure never blocks the rest of the
// sweep.
type SweepJobStore interface {
	// EnqueueFleet queues one job per vehicle that has no pending job and
	// returns the number queued.
	EnqueueFleet(ctx context.Context) (int, error)
	ClaimNext(ctx context.Context) (job SweepJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	// RecordScore upserts the latest integrity result for a vehicle so
	// list views read precomputed scores.
	RecordScore(ctx context.Context, vehicleID string, score domain.IntegrityScoreBreakdown) error
}
