package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type fakeTripSource struct {
	trips []TripRecord
	err   error
}

func (f fakeTripSource) FetchTrips(_ context.Context, _, _ uuid.UUID, _, _ time.Time) ([]TripRecord, error) {
	return f.trips, f.err
}

type fakeModelSource struct {
	model models.BillingModel
	err   error
}

func (f fakeModelSource) FetchModel(_ context.Context, _, _ uuid.UUID) (models.BillingModel, error) {
	return f.model, f.err
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func tripOf(distanceKm, durationHours string) TripRecord {
	return TripRecord{
		ID:            uuid.New(),
		DistanceKm:    d(distanceKm),
		DurationHours: d(durationHours),
		StartTime:     time.Date(2025, 1, 10, 9, 0, 0, 0, time.Local),
	}
}

func repeatTrips(n int, distanceKm, durationHours string) []TripRecord {
	out := make([]TripRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, tripOf(distanceKm, durationHours))
	}
	return out
}

func TestCalculatePackageWithOverage(t *testing.T) {
	// 110 trips totaling 1600 km against a 100-trip / 1500-km package.
	trips := repeatTrips(109, "14.5", "1.0")
	trips = append(trips, tripOf("19.5", "1.0")) // 109 x 14.5 + 19.5 = 1600
	svc := BillingService{
		Trips: fakeTripSource{trips: trips},
		Models: fakeModelSource{model: models.BillingModel{
			ModelType:            models.ModelPackage,
			PackageMonthlyRate:   d("25000"),
			PackageTripsIncluded: 100,
			PackageKmsIncluded:   d("1500"),
			ExtraTripRate:        d("400"),
			ExtraKmRate:          d("22"),
		}},
	}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.ExtraTrips != 10 {
		t.Fatalf("expected 10 extra trips, got %d", res.ExtraTrips)
	}
	if !res.ExtraKm.Equal(d("100")) {
		t.Fatalf("expected 100 extra km, got %s", res.ExtraKm)
	}
	if !res.TotalCost.Equal(d("31200")) {
		t.Fatalf("expected total 31200, got %s", res.TotalCost)
	}
	if res.TaxAmount.StringFixed(2) != "5616.00" {
		t.Fatalf("expected tax 5616.00, got %s", res.TaxAmount.StringFixed(2))
	}
	if res.GrandTotal.StringFixed(2) != "36816.00" {
		t.Fatalf("expected grand total 36816.00, got %s", res.GrandTotal.StringFixed(2))
	}
}

func TestCalculatePackageNeverBelowMonthlyRate(t *testing.T) {
	svc := BillingService{
		Trips: fakeTripSource{},
		Models: fakeModelSource{model: models.BillingModel{
			ModelType:            models.ModelPackage,
			PackageMonthlyRate:   d("18000"),
			PackageTripsIncluded: 50,
			PackageKmsIncluded:   d("800"),
			ExtraTripRate:        d("300"),
			ExtraKmRate:          d("20"),
		}},
	}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-03")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.TripCount != 0 {
		t.Fatalf("expected empty month, got %d trips", res.TripCount)
	}
	if !res.TotalCost.Equal(d("18000")) {
		t.Fatalf("empty month should still cost the monthly rate, got %s", res.TotalCost)
	}
}

func TestCalculateTripModelExtraCharges(t *testing.T) {
	model := models.BillingModel{
		ModelType:         models.ModelTrip,
		RatePerTrip:       d("100"),
		RatePerKm:         d("10"),
		ExtraKmRate:       d("15"),
		ExtraHourRate:     d("250"),
		StandardTripKm:    d("25"),
		StandardTripHours: d("1.5"),
	}
	trips := []TripRecord{
		tripOf("20", "1.0"), // within limits
		tripOf("30", "1.0"), // 5 extra km
		tripOf("25", "2.5"), // 1 extra hour
	}
	svc := BillingService{Trips: fakeTripSource{trips: trips}, Models: fakeModelSource{model: model}}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-02")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if !res.TripCharges.Equal(d("300")) {
		t.Fatalf("expected trip charges 300, got %s", res.TripCharges)
	}
	if !res.DistanceCharges.Equal(d("750")) {
		t.Fatalf("expected distance charges 750, got %s", res.DistanceCharges)
	}
	if !res.ExtraKmCharges.Equal(d("75")) {
		t.Fatalf("expected extra km charges 75, got %s", res.ExtraKmCharges)
	}
	if !res.ExtraHourCharges.Equal(d("250")) {
		t.Fatalf("expected extra hour charges 250, got %s", res.ExtraHourCharges)
	}
	if !res.TotalCost.Equal(d("1375")) {
		t.Fatalf("expected total 1375, got %s", res.TotalCost)
	}
	if len(res.Trips) != 3 {
		t.Fatalf("expected 3 trip lines, got %d", len(res.Trips))
	}
}

func TestCalculateTripModelNoExtraKmWithinStandard(t *testing.T) {
	model := models.BillingModel{
		ModelType:         models.ModelTrip,
		RatePerTrip:       d("100"),
		RatePerKm:         d("10"),
		ExtraKmRate:       d("15"),
		ExtraHourRate:     d("250"),
		StandardTripKm:    d("25"),
		StandardTripHours: d("2"),
	}
	svc := BillingService{
		Trips:  fakeTripSource{trips: repeatTrips(5, "25", "1.0")},
		Models: fakeModelSource{model: model},
	}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-02")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if !res.ExtraKmCharges.IsZero() {
		t.Fatalf("no trip exceeds the standard km, yet extra km charges = %s", res.ExtraKmCharges)
	}
	if !res.ExtraKm.IsZero() {
		t.Fatalf("expected zero extra km, got %s", res.ExtraKm)
	}
}

func TestCalculateHybridWithinAllotment(t *testing.T) {
	model := models.BillingModel{
		ModelType:            models.ModelHybrid,
		PackageMonthlyRate:   d("20000"),
		PackageTripsIncluded: 80,
		RatePerTrip:          d("150"),
		RatePerKm:            d("12"),
	}
	svc := BillingService{
		Trips:  fakeTripSource{trips: repeatTrips(80, "10", "1.0")},
		Models: fakeModelSource{model: model},
	}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-04")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.ExtraTrips != 0 || !res.ExtraTripCharges.IsZero() || !res.ExtraDistanceCharges.IsZero() {
		t.Fatalf("within allotment should have no extras: trips=%d tripCharges=%s distCharges=%s",
			res.ExtraTrips, res.ExtraTripCharges, res.ExtraDistanceCharges)
	}
	if !res.TotalCost.Equal(d("20000")) {
		t.Fatalf("within allotment total should equal the monthly rate, got %s", res.TotalCost)
	}
}

func TestCalculateHybridBeyondAllotment(t *testing.T) {
	model := models.BillingModel{
		ModelType:            models.ModelHybrid,
		PackageMonthlyRate:   d("20000"),
		PackageTripsIncluded: 2,
		RatePerTrip:          d("150"),
		RatePerKm:            d("12"),
	}
	trips := []TripRecord{
		tripOf("10", "1.0"),
		tripOf("10", "1.0"),
		tripOf("20", "1.0"), // billed: 150 + 20x12 = 390
		tripOf("5", "1.0"),  // billed: 150 + 5x12 = 210
	}
	svc := BillingService{Trips: fakeTripSource{trips: trips}, Models: fakeModelSource{model: model}}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-04")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	if res.ExtraTrips != 2 {
		t.Fatalf("expected 2 billed trips, got %d", res.ExtraTrips)
	}
	if !res.ExtraTripCharges.Equal(d("300")) {
		t.Fatalf("expected extra trip charges 300, got %s", res.ExtraTripCharges)
	}
	if !res.ExtraDistanceCharges.Equal(d("300")) {
		t.Fatalf("expected extra distance charges 300, got %s", res.ExtraDistanceCharges)
	}
	if !res.TotalCost.Equal(d("20600")) {
		t.Fatalf("expected total 20600, got %s", res.TotalCost)
	}
}

func TestCalculateGrandTotalMatchesTaxFormula(t *testing.T) {
	model := models.BillingModel{
		ModelType:         models.ModelTrip,
		RatePerTrip:       d("99.99"),
		RatePerKm:         d("7.77"),
		ExtraKmRate:       d("3.33"),
		ExtraHourRate:     d("111.11"),
		StandardTripKm:    d("20"),
		StandardTripHours: d("1"),
	}
	trips := []TripRecord{
		tripOf("23.4", "1.25"),
		tripOf("18.2", "0.75"),
		tripOf("31.9", "2.5"),
	}
	svc := BillingService{Trips: fakeTripSource{trips: trips}, Models: fakeModelSource{model: model}}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-05")
	if err != nil {
		t.Fatalf("Calculate error: %v", err)
	}
	want := res.TotalCost.Mul(d("1.18")).Round(2)
	if !res.GrandTotal.Equal(want) {
		t.Fatalf("grand total %s != round2(total x 1.18) %s", res.GrandTotal, want)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	model := models.BillingModel{
		ModelType:            models.ModelPackage,
		PackageMonthlyRate:   d("25000"),
		PackageTripsIncluded: 100,
		PackageKmsIncluded:   d("1500"),
		ExtraTripRate:        d("400"),
		ExtraKmRate:          d("22"),
	}
	svc := BillingService{
		Trips:  fakeTripSource{trips: repeatTrips(110, "14.55", "1.0")},
		Models: fakeModelSource{model: model},
	}
	clientID, vendorID := uuid.New(), uuid.New()

	first, err := svc.Calculate(context.Background(), clientID, vendorID, "2025-01")
	if err != nil {
		t.Fatalf("first Calculate error: %v", err)
	}
	second, err := svc.Calculate(context.Background(), clientID, vendorID, "2025-01")
	if err != nil {
		t.Fatalf("second Calculate error: %v", err)
	}
	if !first.GrandTotal.Equal(second.GrandTotal) || !first.TotalCost.Equal(second.TotalCost) {
		t.Fatalf("repeated calculation drifted: %s/%s vs %s/%s",
			first.TotalCost, first.GrandTotal, second.TotalCost, second.GrandTotal)
	}
}

func TestCalculateMissingModelIsConfigurationError(t *testing.T) {
	svc := BillingService{
		Trips:  fakeTripSource{},
		Models: fakeModelSource{err: domain.NotFoundError{Resource: "billing model"}},
	}
	_, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if !domain.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCalculateModelFetchFailureIsConfigurationError(t *testing.T) {
	svc := BillingService{
		Trips:  fakeTripSource{},
		Models: fakeModelSource{err: errors.New("connection refused")},
	}
	_, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if !domain.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCalculateUnknownModelType(t *testing.T) {
	svc := BillingService{
		Trips:  fakeTripSource{},
		Models: fakeModelSource{model: models.BillingModel{ModelType: "SURGE"}},
	}
	_, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if !domain.IsUnknownModel(err) {
		t.Fatalf("expected unknown-model error, got %v", err)
	}
}

func TestCalculateTripFetchFailsSoft(t *testing.T) {
	model := models.BillingModel{
		ModelType:            models.ModelPackage,
		PackageMonthlyRate:   d("25000"),
		PackageTripsIncluded: 100,
		PackageKmsIncluded:   d("1500"),
		ExtraTripRate:        d("400"),
		ExtraKmRate:          d("22"),
	}
	svc := BillingService{
		Trips:  fakeTripSource{err: errors.New("trip service down")},
		Models: fakeModelSource{model: model},
	}

	res, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if err != nil {
		t.Fatalf("soft trip failure should not fail the calculation: %v", err)
	}
	if res.TripCount != 0 {
		t.Fatalf("expected zero trips after soft failure, got %d", res.TripCount)
	}
	if !res.TotalCost.Equal(d("25000")) {
		t.Fatalf("expected bare monthly rate, got %s", res.TotalCost)
	}
}

func TestCalculateTripFetchStrictMode(t *testing.T) {
	svc := BillingService{
		Trips:       fakeTripSource{err: errors.New("trip service down")},
		Models:      fakeModelSource{model: models.BillingModel{ModelType: models.ModelTrip}},
		StrictTrips: true,
	}
	_, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "2025-01")
	if err == nil {
		t.Fatalf("strict mode should propagate trip fetch failure")
	}
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestCalculateRejectsBadMonth(t *testing.T) {
	svc := BillingService{Trips: fakeTripSource{}, Models: fakeModelSource{}}
	_, err := svc.Calculate(context.Background(), uuid.New(), uuid.New(), "January 2025")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
