package repositories

import (
	"testing"
	"time"

	"corptransit/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func billingModelRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "client_id", "vendor_id", "model_type",
		"rate_per_trip", "rate_per_km", "package_monthly_rate", "package_trips_included",
		"package_kms_included", "extra_trip_rate", "extra_km_rate", "extra_hour_rate",
		"peak_hour_multiplier", "standard_trip_km", "standard_trip_hours",
		"active", "created_at", "updated_at",
	})
}

func TestBillingModelGetByPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	vendorID := uuid.New()
	modelID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("FROM billing_models").
		WithArgs(clientID.String(), vendorID.String()).
		WillReturnRows(billingModelRows().AddRow(
			modelID.String(), clientID.String(), vendorID.String(), "PACKAGE",
			nil, nil, "25000.00", 100,
			"2000.00", "200.00", "12.00", nil,
			"1.5", "25.00", "1.5",
			true, now, now,
		))

	repo := BillingModelRepository{DB: db}
	m, err := repo.GetByPair(clientID, vendorID)
	if err != nil {
		t.Fatalf("GetByPair error: %v", err)
	}
	if m.ID != modelID {
		t.Fatalf("expected model %s, got %s", modelID, m.ID)
	}
	if m.ModelType != "PACKAGE" {
		t.Fatalf("expected PACKAGE, got %s", m.ModelType)
	}
	if m.PackageMonthlyRate.String() != "25000" {
		t.Fatalf("unexpected monthly rate %s", m.PackageMonthlyRate)
	}
	if m.PackageTripsIncluded != 100 {
		t.Fatalf("unexpected trips included %d", m.PackageTripsIncluded)
	}
	if !m.RatePerTrip.IsZero() {
		t.Fatalf("NULL rate_per_trip should scan as zero, got %s", m.RatePerTrip)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBillingModelGetByPairNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	clientID := uuid.New()
	vendorID := uuid.New()

	mock.ExpectQuery("FROM billing_models").
		WithArgs(clientID.String(), vendorID.String()).
		WillReturnRows(billingModelRows())

	repo := BillingModelRepository{DB: db}
	_, err = repo.GetByPair(clientID, vendorID)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
