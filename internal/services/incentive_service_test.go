package services

import (
	"context"
	"testing"
	"time"

	"corptransit/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestEmployeeTripIncentiveEveningOvertime(t *testing.T) {
	// Wednesday 19:00, two hours against a one-hour standard:
	// 1 extra hour x 250 + late-night 150 = 400.
	start := time.Date(2025, 1, 8, 19, 0, 0, 0, time.Local)
	got := EmployeeTripIncentive(d("2"), d("1"), d("30"), d("25"), start)
	if !got.Equal(d("400")) {
		t.Fatalf("expected 400, got %s", got)
	}
}

func TestEmployeeTripIncentiveNightBoundaries(t *testing.T) {
	day := time.Date(2025, 1, 8, 0, 0, 0, 0, time.Local) // a Wednesday
	cases := []struct {
		hour int
		want string
	}{
		{6, "150"},  // 06:00 still counts as night
		{7, "0"},    // 07:00 does not
		{12, "0"},   // midday
		{17, "0"},   // 17:00 not yet night
		{18, "150"}, // 18:00 is night
		{23, "150"},
		{0, "150"},
	}
	for _, c := range cases {
		start := day.Add(time.Duration(c.hour) * time.Hour)
		got := EmployeeTripIncentive(d("1"), d("1"), d("10"), d("25"), start)
		if !got.Equal(d(c.want)) {
			t.Fatalf("hour %d: expected %s, got %s", c.hour, c.want, got)
		}
	}
}

func TestEmployeeTripIncentiveWeekend(t *testing.T) {
	saturday := time.Date(2025, 1, 11, 10, 0, 0, 0, time.Local)
	got := EmployeeTripIncentive(d("1"), d("1"), d("10"), d("25"), saturday)
	if !got.Equal(d("200")) {
		t.Fatalf("expected weekend bonus 200, got %s", got)
	}
}

func TestEmployeeTripIncentiveIgnoresDistance(t *testing.T) {
	start := time.Date(2025, 1, 8, 12, 0, 0, 0, time.Local)
	near := EmployeeTripIncentive(d("1"), d("1"), d("5"), d("25"), start)
	far := EmployeeTripIncentive(d("1"), d("1"), d("500"), d("25"), start)
	if !near.Equal(far) {
		t.Fatalf("distance must not affect the per-trip amount: %s vs %s", near, far)
	}
}

func TestMonthlyEmployeeIncentive(t *testing.T) {
	res := MonthlyEmployeeIncentive(d("4.5"), 3, 2)
	if !res.ExtraHourIncentive.Equal(d("1125")) {
		t.Fatalf("expected extra hour incentive 1125, got %s", res.ExtraHourIncentive)
	}
	if !res.LateNightIncentive.Equal(d("450")) {
		t.Fatalf("expected late night incentive 450, got %s", res.LateNightIncentive)
	}
	if !res.WeekendIncentive.Equal(d("400")) {
		t.Fatalf("expected weekend incentive 400, got %s", res.WeekendIncentive)
	}
	if !res.Total.Equal(d("1975")) {
		t.Fatalf("expected total 1975, got %s", res.Total)
	}
}

func TestVendorIncentiveRatingTiers(t *testing.T) {
	cases := []struct {
		rating string
		want   string
	}{
		{"4.5", "5000"},
		{"4.8", "5000"},
		{"4.0", "2000"},
		{"4.4", "2000"},
		{"3.9", "0"},
	}
	for _, c := range cases {
		res := VendorIncentive(decimal.Zero, 0, d(c.rating))
		if !res.RatingBonus.Equal(d(c.want)) {
			t.Fatalf("rating %s: expected bonus %s, got %s", c.rating, c.want, res.RatingBonus)
		}
	}
}

func TestVendorIncentiveVolumeAndExtraKm(t *testing.T) {
	res := VendorIncentive(d("120"), 130, d("3.0"))
	if !res.ExtraKmBonus.Equal(d("600")) {
		t.Fatalf("expected extra km bonus 600, got %s", res.ExtraKmBonus)
	}
	if !res.VolumeBonus.Equal(d("1500")) {
		t.Fatalf("expected volume bonus 1500, got %s", res.VolumeBonus)
	}
	if !res.Total.Equal(d("2100")) {
		t.Fatalf("expected total 2100, got %s", res.Total)
	}

	atThreshold := VendorIncentive(decimal.Zero, 100, d("3.0"))
	if !atThreshold.VolumeBonus.IsZero() {
		t.Fatalf("100 trips is at the threshold, expected zero volume bonus, got %s", atThreshold.VolumeBonus)
	}
}

func TestEmployeeMonthlyAggregation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	employeeID := uuid.New()
	clientID := uuid.New()
	vendorID := uuid.New()
	now := time.Now()

	tripCols := []string{
		"id", "client_id", "vendor_id", "employee_id", "vehicle_number",
		"driver_name", "driver_phone",
		"trip_start_time", "trip_end_time", "pickup_location", "drop_location",
		"distance_km", "duration_hours", "trip_type", "status", "billed",
		"notes", "created_at", "updated_at",
	}
	weekdayNoon := time.Date(2025, 1, 8, 12, 0, 0, 0, time.Local)  // Wednesday
	weekdayNight := time.Date(2025, 1, 8, 19, 0, 0, 0, time.Local) // Wednesday 19:00
	saturday := time.Date(2025, 1, 11, 10, 0, 0, 0, time.Local)

	mock.ExpectQuery("FROM trips").
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(uuid.NewString(), clientID.String(), vendorID.String(), employeeID.String(), "KA01AB1234",
				"", "", weekdayNoon, weekdayNoon.Add(time.Hour), "A", "B",
				"20.00", "1.00", "HOME_TO_OFFICE", "COMPLETED", false, "", now, now).
			AddRow(uuid.NewString(), clientID.String(), vendorID.String(), employeeID.String(), "KA01AB1234",
				"", "", weekdayNight, weekdayNight.Add(2*time.Hour), "A", "B",
				"20.00", "2.00", "OFFICE_TO_HOME", "COMPLETED", false, "", now, now).
			AddRow(uuid.NewString(), clientID.String(), vendorID.String(), employeeID.String(), "KA01AB1234",
				"", "", saturday, saturday.Add(time.Hour), "A", "B",
				"20.00", "1.00", "ADHOC", "COMPLETED", false, "", now, now))

	// One model lookup for the pair, cached for the remaining trips.
	modelCols := []string{
		"id", "client_id", "vendor_id", "model_type",
		"rate_per_trip", "rate_per_km", "package_monthly_rate", "package_trips_included",
		"package_kms_included", "extra_trip_rate", "extra_km_rate", "extra_hour_rate",
		"peak_hour_multiplier", "standard_trip_km", "standard_trip_hours",
		"active", "created_at", "updated_at",
	}
	mock.ExpectQuery("FROM billing_models").
		WillReturnRows(sqlmock.NewRows(modelCols).
			AddRow(uuid.NewString(), clientID.String(), vendorID.String(), "TRIP",
				"100", "10", nil, 0, nil, nil, "15", "250",
				nil, "25", "1", true, now, now))

	svc := IncentiveService{
		TripRepo:  repositories.TripRepository{DB: db},
		ModelRepo: repositories.BillingModelRepository{DB: db},
	}
	out, err := svc.EmployeeMonthly(context.Background(), employeeID, "2025-01")
	if err != nil {
		t.Fatalf("EmployeeMonthly error: %v", err)
	}
	if out.TripCount != 3 {
		t.Fatalf("expected 3 trips, got %d", out.TripCount)
	}
	if !out.TotalExtraHrs.Equal(d("1")) {
		t.Fatalf("expected 1 extra hour, got %s", out.TotalExtraHrs)
	}
	if out.LateNightTrips != 1 {
		t.Fatalf("expected 1 late-night trip, got %d", out.LateNightTrips)
	}
	if out.WeekendTrips != 1 {
		t.Fatalf("expected 1 weekend trip, got %d", out.WeekendTrips)
	}
	// 1h x 250 + 150 + 200
	if !out.Incentive.Total.Equal(d("600")) {
		t.Fatalf("expected total 600, got %s", out.Incentive.Total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
