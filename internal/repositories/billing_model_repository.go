package repositories

import (
	"database/sql"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type BillingModelRepository struct {
	DB *sql.DB
}

func (r BillingModelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const billingModelColumns = `id, client_id, vendor_id, model_type,
	rate_per_trip, rate_per_km, package_monthly_rate, package_trips_included,
	package_kms_included, extra_trip_rate, extra_km_rate, extra_hour_rate,
	peak_hour_multiplier, standard_trip_km, standard_trip_hours,
	active, created_at, updated_at`

func (r BillingModelRepository) scan(row interface{ Scan(...any) error }) (models.BillingModel, error) {
	var (
		m        models.BillingModel
		id       string
		clientID string
		vendorID string

		ratePerTrip, ratePerKm, packageMonthlyRate sql.NullString
		packageKmsIncluded, extraTripRate          sql.NullString
		extraKmRate, extraHourRate, peakHour       sql.NullString
		standardTripKm, standardTripHours          sql.NullString
		tripsIncluded                              sql.NullInt64
	)
	err := row.Scan(&id, &clientID, &vendorID, &m.ModelType,
		&ratePerTrip, &ratePerKm, &packageMonthlyRate, &tripsIncluded,
		&packageKmsIncluded, &extraTripRate, &extraKmRate, &extraHourRate,
		&peakHour, &standardTripKm, &standardTripHours,
		&m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	m.ID = asUUID(id)
	m.ClientID = asUUID(clientID)
	m.VendorID = asUUID(vendorID)
	m.RatePerTrip = dec(ratePerTrip)
	m.RatePerKm = dec(ratePerKm)
	m.PackageMonthlyRate = dec(packageMonthlyRate)
	m.PackageTripsIncluded = int(tripsIncluded.Int64)
	m.PackageKmsIncluded = dec(packageKmsIncluded)
	m.ExtraTripRate = dec(extraTripRate)
	m.ExtraKmRate = dec(extraKmRate)
	m.ExtraHourRate = dec(extraHourRate)
	m.PeakHourMultiplier = dec(peakHour)
	m.StandardTripKm = dec(standardTripKm)
	m.StandardTripHours = dec(standardTripHours)
	return m, nil
}

func (r BillingModelRepository) GetByID(id uuid.UUID) (models.BillingModel, error) {
	row := r.db().QueryRow(`SELECT `+billingModelColumns+` FROM billing_models WHERE id = ?`, id.String())
	m, err := r.scan(row)
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "billing model"}
	}
	return m, err
}

// GetByPair returns the active billing model for a client/vendor pair.
// At most one is active per pair (unique index on client_id, vendor_id).
func (r BillingModelRepository) GetByPair(clientID, vendorID uuid.UUID) (models.BillingModel, error) {
	row := r.db().QueryRow(`
		SELECT `+billingModelColumns+`
		FROM billing_models
		WHERE client_id = ? AND vendor_id = ? AND active = 1
	`, clientID.String(), vendorID.String())
	m, err := r.scan(row)
	if err == sql.ErrNoRows {
		return m, domain.NotFoundError{Resource: "billing model"}
	}
	return m, err
}

func (r BillingModelRepository) ExistsByPair(clientID, vendorID uuid.UUID) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM billing_models WHERE client_id = ? AND vendor_id = ?`,
		clientID.String(), vendorID.String()).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r BillingModelRepository) ListByClient(clientID uuid.UUID) ([]models.BillingModel, error) {
	return r.listWhere(`client_id = ?`, clientID.String())
}

func (r BillingModelRepository) ListActive() ([]models.BillingModel, error) {
	return r.listWhere(`active = 1`)
}

func (r BillingModelRepository) listWhere(where string, args ...any) ([]models.BillingModel, error) {
	rows, err := r.db().Query(`SELECT `+billingModelColumns+` FROM billing_models WHERE `+where+` ORDER BY created_at DESC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BillingModel{}
	for rows.Next() {
		m, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r BillingModelRepository) Insert(m models.BillingModel) error {
	_, err := r.db().Exec(`
		INSERT INTO billing_models (id, client_id, vendor_id, model_type,
			rate_per_trip, rate_per_km, package_monthly_rate, package_trips_included,
			package_kms_included, extra_trip_rate, extra_km_rate, extra_hour_rate,
			peak_hour_multiplier, standard_trip_km, standard_trip_hours,
			active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		m.ID.String(), m.ClientID.String(), m.VendorID.String(), m.ModelType,
		m.RatePerTrip.String(), m.RatePerKm.String(), m.PackageMonthlyRate.String(),
		m.PackageTripsIncluded, m.PackageKmsIncluded.String(),
		m.ExtraTripRate.String(), m.ExtraKmRate.String(), m.ExtraHourRate.String(),
		m.PeakHourMultiplier.String(), m.StandardTripKm.String(), m.StandardTripHours.String(),
		m.Active,
	)
	return err
}

func (r BillingModelRepository) Update(m models.BillingModel) error {
	res, err := r.db().Exec(`
		UPDATE billing_models
		SET model_type = ?, rate_per_trip = ?, rate_per_km = ?,
			package_monthly_rate = ?, package_trips_included = ?,
			package_kms_included = ?, extra_trip_rate = ?, extra_km_rate = ?,
			extra_hour_rate = ?, peak_hour_multiplier = ?, standard_trip_km = ?,
			standard_trip_hours = ?, active = ?, updated_at = NOW()
		WHERE id = ?
	`,
		m.ModelType, m.RatePerTrip.String(), m.RatePerKm.String(),
		m.PackageMonthlyRate.String(), m.PackageTripsIncluded,
		m.PackageKmsIncluded.String(), m.ExtraTripRate.String(), m.ExtraKmRate.String(),
		m.ExtraHourRate.String(), m.PeakHourMultiplier.String(), m.StandardTripKm.String(),
		m.StandardTripHours.String(), m.Active,
		m.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "billing model"}
	}
	return nil
}

func (r BillingModelRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM billing_models WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "billing model"}
	}
	return nil
}
