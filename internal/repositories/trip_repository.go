package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, client_id, vendor_id, employee_id, vehicle_number,
	COALESCE(driver_name,''), COALESCE(driver_phone,''),
	trip_start_time, trip_end_time, pickup_location, COALESCE(drop_location,''),
	distance_km, duration_hours, COALESCE(trip_type,''), status, billed,
	COALESCE(notes,''), created_at, updated_at`

func (r TripRepository) scan(row interface{ Scan(...any) error }) (models.Trip, error) {
	var (
		t          models.Trip
		id         string
		clientID   string
		vendorID   string
		employeeID string
		endTime    sql.NullTime
		distance   sql.NullString
		duration   sql.NullString
	)
	err := row.Scan(&id, &clientID, &vendorID, &employeeID, &t.VehicleNumber,
		&t.DriverName, &t.DriverPhone,
		&t.TripStartTime, &endTime, &t.PickupLocation, &t.DropLocation,
		&distance, &duration, &t.TripType, &t.Status, &t.Billed,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.ID = asUUID(id)
	t.ClientID = asUUID(clientID)
	t.VendorID = asUUID(vendorID)
	t.EmployeeID = asUUID(employeeID)
	t.TripEndTime = timePtr(endTime)
	t.DistanceKm = dec(distance)
	t.DurationHours = dec(duration)
	return t, nil
}

func (r TripRepository) GetByID(id uuid.UUID) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id.String())
	t, err := r.scan(row)
	if err == sql.ErrNoRows {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripRepository) list(where string, args ...any) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips`
	if where != "" {
		query += ` WHERE ` + where
	}
	query += ` ORDER BY trip_start_time ASC, id ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) ListByClient(clientID uuid.UUID) ([]models.Trip, error) {
	return r.list(`client_id = ?`, clientID.String())
}

func (r TripRepository) ListByVendor(vendorID uuid.UUID) ([]models.Trip, error) {
	return r.list(`vendor_id = ?`, vendorID.String())
}

func (r TripRepository) ListByEmployee(employeeID uuid.UUID) ([]models.Trip, error) {
	return r.list(`employee_id = ?`, employeeID.String())
}

// ListByPairBetween returns completed trips for a client/vendor pair whose
// start time falls in the half-open [start, end) window, ordered by start
// time. This is the billing engine's trip feed.
func (r TripRepository) ListByPairBetween(clientID, vendorID uuid.UUID, start, end time.Time) ([]models.Trip, error) {
	return r.list(
		`client_id = ? AND vendor_id = ? AND status = ? AND trip_start_time >= ? AND trip_start_time < ?`,
		clientID.String(), vendorID.String(), models.TripCompleted, start, end,
	)
}

func (r TripRepository) ListByEmployeeBetween(employeeID uuid.UUID, start, end time.Time) ([]models.Trip, error) {
	return r.list(
		`employee_id = ? AND status = ? AND trip_start_time >= ? AND trip_start_time < ?`,
		employeeID.String(), models.TripCompleted, start, end,
	)
}

func (r TripRepository) ListByVendorBetween(vendorID uuid.UUID, start, end time.Time) ([]models.Trip, error) {
	return r.list(
		`vendor_id = ? AND status = ? AND trip_start_time >= ? AND trip_start_time < ?`,
		vendorID.String(), models.TripCompleted, start, end,
	)
}

func (r TripRepository) ListUnbilledByClient(clientID uuid.UUID) ([]models.Trip, error) {
	return r.list(`client_id = ? AND status = ? AND billed = 0`, clientID.String(), models.TripCompleted)
}

func (r TripRepository) CountByClientMonth(clientID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM trips
		WHERE client_id = ? AND trip_start_time >= ? AND trip_start_time < ?
	`, clientID.String(), start, end).Scan(&n)
	return n, err
}

func (r TripRepository) Insert(t models.Trip) error {
	_, err := r.db().Exec(`
		INSERT INTO trips (id, client_id, vendor_id, employee_id, vehicle_number,
			driver_name, driver_phone, trip_start_time, trip_end_time,
			pickup_location, drop_location, distance_km, duration_hours,
			trip_type, status, billed, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		t.ID.String(), t.ClientID.String(), t.VendorID.String(), t.EmployeeID.String(),
		t.VehicleNumber, NullIfEmpty(t.DriverName), NullIfEmpty(t.DriverPhone),
		t.TripStartTime, t.TripEndTime,
		t.PickupLocation, NullIfEmpty(t.DropLocation),
		t.DistanceKm.String(), t.DurationHours.String(),
		NullIfEmpty(t.TripType), t.Status, t.Billed, NullIfEmpty(t.Notes),
	)
	return err
}

func (r TripRepository) Update(t models.Trip) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET vehicle_number = ?, driver_name = ?, driver_phone = ?,
			trip_start_time = ?, trip_end_time = ?, pickup_location = ?,
			drop_location = ?, distance_km = ?, duration_hours = ?,
			trip_type = ?, status = ?, notes = ?, updated_at = NOW()
		WHERE id = ?
	`,
		t.VehicleNumber, NullIfEmpty(t.DriverName), NullIfEmpty(t.DriverPhone),
		t.TripStartTime, t.TripEndTime, t.PickupLocation,
		NullIfEmpty(t.DropLocation), t.DistanceKm.String(), t.DurationHours.String(),
		NullIfEmpty(t.TripType), t.Status, NullIfEmpty(t.Notes),
		t.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) MarkCompleted(id uuid.UUID, endTime time.Time, distanceKm, durationHours decimal.Decimal, dropLocation string) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET status = ?, trip_end_time = ?, distance_km = ?, duration_hours = ?,
			drop_location = COALESCE(?, drop_location), updated_at = NOW()
		WHERE id = ?
	`,
		models.TripCompleted, endTime, distanceKm.String(), durationHours.String(),
		NullIfEmpty(strings.TrimSpace(dropLocation)), id.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

func (r TripRepository) MarkCancelled(id uuid.UUID, reason string) error {
	res, err := r.db().Exec(`
		UPDATE trips
		SET status = ?, notes = COALESCE(?, notes), updated_at = NOW()
		WHERE id = ?
	`, models.TripCancelled, NullIfEmpty(strings.TrimSpace(reason)), id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

// MarkBilledByPairBetween flags a billing period's completed trips once an
// invoice has been generated for them.
func (r TripRepository) MarkBilledByPairBetween(clientID, vendorID uuid.UUID, start, end time.Time) error {
	_, err := r.db().Exec(`
		UPDATE trips
		SET billed = 1, updated_at = NOW()
		WHERE client_id = ? AND vendor_id = ? AND status = ?
		  AND trip_start_time >= ? AND trip_start_time < ?
	`, clientID.String(), vendorID.String(), models.TripCompleted, start, end)
	return err
}

func (r TripRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM trips WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}
