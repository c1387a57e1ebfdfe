package sweeprunner

import (
	"context"
	"log"
	"time"

	"kerbside/internal/ports"
)

// Processor recomputes and persists the result for one vehicle.
type Processor interface {
	Process(ctx context.Context, vehicleID string) error
}

// ScoreProcessor assesses a vehicle and records its integrity score.
type ScoreProcessor struct {
	Assessor ports.Assessor
	Scores   ports.SweepJobStore
}

func (p ScoreProcessor) Process(ctx context.Context, vehicleID string) error {
	assessment, err := p.Assessor.AssessVehicle(ctx, vehicleID)
	if err != nil {
		return err
	}
	return p.Scores.RecordScore(ctx, vehicleID, assessment.Integrity)
}

// Run starts worker goroutines that claim sweep jobs and process them. Each
// vehicle's job is independent: a failure is marked on its own job and the
// workers move on.
func Run(ctx context.Context, repo ports.SweepJobStore, processor Processor, concurrency int, pollInterval time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.SweepJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(jobsCh)
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						log.Printf("[sweep] job claim error: %v", err)
						break
					}
					if !found {
						break
					}
					jobsCh <- job
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				if err := processor.Process(ctx, job.VehicleID); err != nil {
					_ = repo.MarkFailed(ctx, job.ID, err.Error())
					log.Printf("[sweep] worker %d: vehicle %s failed: %v", idx, job.VehicleID, err)
					continue
				}
				if err := repo.MarkCompleted(ctx, job.ID); err != nil {
					log.Printf("[sweep] worker %d: complete err: %v", idx, err)
				}
			}
		}(i)
	}
}

// Drain claims and processes queued jobs synchronously until none remain,
// using the same processor logic as the background workers. Used by the
// blocking sweep path. Returns the number of jobs processed and the number
// that failed.
func Drain(ctx context.Context, repo ports.SweepJobStore, processor Processor) (processed, failed int, err error) {
	for {
		job, found, err := repo.ClaimNext(ctx)
		if err != nil {
			return processed, failed, err
		}
		if !found {
			return processed, failed, nil
		}
		processed++
		if perr := processor.Process(ctx, job.VehicleID); perr != nil {
			failed++
			_ = repo.MarkFailed(ctx, job.ID, perr.Error())
			continue
		}
		if merr := repo.MarkCompleted(ctx, job.ID); merr != nil {
			log.Printf("[sweep] complete err: %v", merr)
		}
	}
}
