package repositories

import (
	"database/sql"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type VendorRepository struct {
	DB *sql.DB
}

func (r VendorRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vendorColumns = `id, name, code, client_id, COALESCE(service_type,''),
	COALESCE(address,''), COALESCE(contact_email,''), COALESCE(contact_phone,''),
	COALESCE(contact_person,''), COALESCE(bank_account_details,''),
	COALESCE(tax_id,''), COALESCE(gst_number,''), service_rating,
	active, created_at, updated_at`

func (r VendorRepository) scan(row interface{ Scan(...any) error }) (models.Vendor, error) {
	var (
		v        models.Vendor
		id       string
		clientID string
		rating   sql.NullString
	)
	err := row.Scan(&id, &v.Name, &v.Code, &clientID, &v.ServiceType,
		&v.Address, &v.ContactEmail, &v.ContactPhone, &v.ContactPerson,
		&v.BankAccountDetails, &v.TaxID, &v.GSTNumber, &rating,
		&v.Active, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return v, err
	}
	v.ID = asUUID(id)
	v.ClientID = asUUID(clientID)
	v.ServiceRating = dec(rating)
	return v, nil
}

func (r VendorRepository) GetByID(id uuid.UUID) (models.Vendor, error) {
	row := r.db().QueryRow(`SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id.String())
	v, err := r.scan(row)
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vendor"}
	}
	return v, err
}

func (r VendorRepository) GetByCode(code string) (models.Vendor, error) {
	row := r.db().QueryRow(`SELECT `+vendorColumns+` FROM vendors WHERE code = ?`, code)
	v, err := r.scan(row)
	if err == sql.ErrNoRows {
		return v, domain.NotFoundError{Resource: "vendor"}
	}
	return v, err
}

func (r VendorRepository) ExistsByCode(code string) (bool, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM vendors WHERE code = ?`, code).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r VendorRepository) List(clientID uuid.UUID, q string, limit, offset int) ([]models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors`
	where := []string{}
	args := []any{}
	if clientID != uuid.Nil {
		where = append(where, "client_id = ?")
		args = append(args, clientID.String())
	}
	if strings.TrimSpace(q) != "" {
		where = append(where, "(name LIKE ? OR code LIKE ?)")
		like := "%" + strings.TrimSpace(q) + "%"
		args = append(args, like, like)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vendor{}
	for rows.Next() {
		v, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VendorRepository) Insert(v models.Vendor) error {
	_, err := r.db().Exec(`
		INSERT INTO vendors (id, name, code, client_id, service_type, address,
			contact_email, contact_phone, contact_person, bank_account_details,
			tax_id, gst_number, service_rating, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		v.ID.String(), v.Name, v.Code, v.ClientID.String(),
		NullIfEmpty(v.ServiceType), NullIfEmpty(v.Address),
		NullIfEmpty(v.ContactEmail), NullIfEmpty(v.ContactPhone),
		NullIfEmpty(v.ContactPerson), NullIfEmpty(v.BankAccountDetails),
		NullIfEmpty(v.TaxID), NullIfEmpty(v.GSTNumber),
		v.ServiceRating.String(), v.Active,
	)
	return err
}

func (r VendorRepository) Update(v models.Vendor) error {
	res, err := r.db().Exec(`
		UPDATE vendors
		SET name = ?, code = ?, service_type = ?, address = ?, contact_email = ?,
			contact_phone = ?, contact_person = ?, bank_account_details = ?,
			tax_id = ?, gst_number = ?, service_rating = ?, active = ?, updated_at = NOW()
		WHERE id = ?
	`,
		v.Name, v.Code,
		NullIfEmpty(v.ServiceType), NullIfEmpty(v.Address),
		NullIfEmpty(v.ContactEmail), NullIfEmpty(v.ContactPhone),
		NullIfEmpty(v.ContactPerson), NullIfEmpty(v.BankAccountDetails),
		NullIfEmpty(v.TaxID), NullIfEmpty(v.GSTNumber),
		v.ServiceRating.String(), v.Active,
		v.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vendor"}
	}
	return nil
}

func (r VendorRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM vendors WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "vendor"}
	}
	return nil
}
