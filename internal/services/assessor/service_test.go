package assessor

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"kerbside/internal/domain"
)

type fakeTrips struct {
	readings []domain.OdometerReading
	err      error
}

func (f *fakeTrips) ListOdometerReadings(ctx context.Context, vehicleID string) ([]domain.OdometerReading, error) {
	return f.readings, f.err
}

type fakeClaims struct {
	claim *domain.Claim
	err   error
}

func (f *fakeClaims) GetActiveClaim(ctx context.Context, vehicleID string) (*domain.Claim, error) {
	return f.claim, f.err
}

type fakeVehicles struct {
	vehicle domain.Vehicle
	err     error
}

func (f *fakeVehicles) GetVehicle(ctx context.Context, vehicleID string) (domain.Vehicle, error) {
	return f.vehicle, f.err
}

func (f *fakeVehicles) UpdateDeclaration(ctx context.Context, vehicleID string, newID domain.DeclarationID, actorID string) error {
	return errors.New("unexpected write from assessor")
}

func tripHistory(vehicleID string) []domain.OdometerReading {
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	mk := func(tripID string, start, end int, day int) domain.OdometerReading {
		return domain.OdometerReading{
			TripID:       tripID,
			VehicleID:    vehicleID,
			StartMileage: start,
			EndMileage:   end,
			StartedAt:    base.AddDate(0, 0, day),
			EndedAt:      base.AddDate(0, 0, day).Add(3 * time.Hour),
		}
	}
	// Gaps between trips: 200, 900, 300.
	return []domain.OdometerReading{
		mk("t1", 800, 1000, 0),
		mk("t2", 1200, 1500, 2),
		mk("t3", 2400, 2600, 9),
		mk("t4", 2900, 3100, 14),
	}
}

func TestAssessVehicleEndToEnd(t *testing.T) {
	vehicleID := uuid.New().String()
	svc := New(
		&fakeTrips{readings: tripHistory(vehicleID)},
		&fakeClaims{},
		&fakeVehicles{vehicle: domain.Vehicle{
			ID:            vehicleID,
			DeclarationID: domain.DeclarationRental,
			InsuranceType: "p2p",
		}},
	)

	got, err := svc.AssessVehicle(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}

	wantAvg := 1400.0 / 3.0
	if math.Abs(got.Compliance.AverageGapMiles-wantAvg) > 0.01 {
		t.Errorf("AverageGapMiles = %.2f, want %.2f", got.Compliance.AverageGapMiles, wantAvg)
	}
	// The average drives severity: one 900-mile gap does not flip the
	// assessment, it is reported via MaxGapMiles and AnomalyCount.
	if got.Compliance.Severity != domain.SeverityCompliant {
		t.Errorf("Severity = %s, want COMPLIANT", got.Compliance.Severity)
	}
	if got.Compliance.MaxGapMiles != 900 {
		t.Errorf("MaxGapMiles = %d, want 900", got.Compliance.MaxGapMiles)
	}
	if got.Compliance.AnomalyCount != 1 {
		t.Errorf("AnomalyCount = %d, want 1", got.Compliance.AnomalyCount)
	}
	if got.Integrity.OverallScore != 100 {
		t.Errorf("OverallScore = %.2f, want 100", got.Integrity.OverallScore)
	}
	if got.Integrity.Tier != domain.TierExcellent {
		t.Errorf("Tier = %s, want EXCELLENT", got.Integrity.Tier)
	}
	if got.Insurance.RevenueSplitPercent != 75 {
		t.Errorf("RevenueSplitPercent = %d, want 75", got.Insurance.RevenueSplitPercent)
	}
	if got.Lock.Locked {
		t.Error("expected unlocked with no active claim")
	}
}

func TestAssessVehicleWithActiveClaim(t *testing.T) {
	vehicleID := uuid.New().String()
	claim := &domain.Claim{
		ID:        uuid.New().String(),
		VehicleID: vehicleID,
		Status:    domain.ClaimUnderReview,
		FiledAt:   time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}
	svc := New(
		&fakeTrips{readings: tripHistory(vehicleID)},
		&fakeClaims{claim: claim},
		&fakeVehicles{vehicle: domain.Vehicle{ID: vehicleID, DeclarationID: domain.DeclarationRental}},
	)

	got, err := svc.AssessVehicle(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !got.Lock.Locked || !got.Lock.HasActiveClaim {
		t.Error("expected locked state with active claim")
	}
	if got.Lock.ActiveClaim == nil || got.Lock.ActiveClaim.ID != claim.ID {
		t.Error("expected active claim detail on lock state")
	}
	if got.Integrity.ClaimPenalty != 15 {
		t.Errorf("ClaimPenalty = %.2f, want 15", got.Integrity.ClaimPenalty)
	}
	if got.Integrity.OverallScore != 85 {
		t.Errorf("OverallScore = %.2f, want 85", got.Integrity.OverallScore)
	}
}

func TestAssessVehicleInsufficientHistory(t *testing.T) {
	vehicleID := uuid.New().String()
	svc := New(
		&fakeTrips{},
		&fakeClaims{},
		&fakeVehicles{vehicle: domain.Vehicle{ID: vehicleID, DeclarationID: domain.DeclarationRental}},
	)
	got, err := svc.AssessVehicle(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("assess: %v", err)
	}
	if !got.Compliance.InsufficientData {
		t.Error("expected InsufficientData with zero trips")
	}
	if got.Compliance.AverageGapMiles != 0 {
		t.Errorf("AverageGapMiles = %.2f, want 0", got.Compliance.AverageGapMiles)
	}
}

func TestAssessVehicleStoreFailuresPropagate(t *testing.T) {
	vehicleID := uuid.New().String()
	boom := errors.New("connection refused")
	vehicles := &fakeVehicles{vehicle: domain.Vehicle{ID: vehicleID, DeclarationID: domain.DeclarationRental}}

	cases := []struct {
		name string
		svc  *Service
	}{
		{"trip ledger down", New(&fakeTrips{err: boom}, &fakeClaims{}, vehicles)},
		{"claims store down", New(&fakeTrips{}, &fakeClaims{err: boom}, vehicles)},
		{"vehicle store down", New(&fakeTrips{}, &fakeClaims{}, &fakeVehicles{err: boom})},
	}
	for _, tc := range cases {
		_, err := tc.svc.AssessVehicle(context.Background(), vehicleID)
		var unavailable *domain.DataUnavailableError
		if !errors.As(err, &unavailable) {
			t.Errorf("%s: err = %v, want DataUnavailableError", tc.name, err)
			continue
		}
		if !errors.Is(err, boom) {
			t.Errorf("%s: cause not preserved", tc.name)
		}
	}
}

func TestAssessVehicleNotFound(t *testing.T) {
	svc := New(&fakeTrips{}, &fakeClaims{}, &fakeVehicles{err: domain.ErrNotFound})
	_, err := svc.AssessVehicle(context.Background(), uuid.New().String())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
