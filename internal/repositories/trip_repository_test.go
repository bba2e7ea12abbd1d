package repositories

import (
	"testing"
	"time"

	"corptransit/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func tripRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "vendor_id", "employee_id", "vehicle_number",
		"driver_name", "driver_phone",
		"trip_start_time", "trip_end_time", "pickup_location", "drop_location",
		"distance_km", "duration_hours", "trip_type", "status", "billed",
		"notes", "created_at", "updated_at",
	})
}

func TestTripListByPairBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	vendorID := uuid.New()
	employeeID := uuid.New()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)
	now := time.Now()

	first := uuid.New()
	second := uuid.New()
	mock.ExpectQuery("FROM trips").
		WithArgs(clientID.String(), vendorID.String(), models.TripCompleted, start, end).
		WillReturnRows(tripRows().
			AddRow(first.String(), clientID.String(), vendorID.String(), employeeID.String(), "KA01AB1234",
				"Ravi", "98400", start.Add(9*time.Hour), start.Add(10*time.Hour), "Home", "Office",
				"22.50", "1.00", models.TripHomeToOffice, models.TripCompleted, false,
				"", now, now).
			AddRow(second.String(), clientID.String(), vendorID.String(), employeeID.String(), "KA01AB1234",
				"Ravi", "98400", start.Add(18*time.Hour), start.Add(20*time.Hour), "Office", "Home",
				"30.00", "2.00", models.TripOfficeToHome, models.TripCompleted, false,
				"", now, now))

	repo := TripRepository{DB: db}
	trips, err := repo.ListByPairBetween(clientID, vendorID, start, end)
	if err != nil {
		t.Fatalf("ListByPairBetween error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if trips[0].ID != first || trips[1].ID != second {
		t.Fatalf("trips out of order: %s, %s", trips[0].ID, trips[1].ID)
	}
	if trips[0].DistanceKm.String() != "22.5" {
		t.Fatalf("unexpected distance %s", trips[0].DistanceKm)
	}
	if trips[1].TripEndTime == nil {
		t.Fatalf("expected trip end time to be set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripListByPairBetweenEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	vendorID := uuid.New()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	mock.ExpectQuery("FROM trips").
		WithArgs(clientID.String(), vendorID.String(), models.TripCompleted, start, end).
		WillReturnRows(tripRows())

	repo := TripRepository{DB: db}
	trips, err := repo.ListByPairBetween(clientID, vendorID, start, end)
	if err != nil {
		t.Fatalf("ListByPairBetween error: %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected no trips, got %d", len(trips))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
