package repositories

import (
	"database/sql"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var (
		u        models.User
		id       string
		tenantID string
		vendorID sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT id, email, password_hash, role, tenant_id, vendor_id,
		       COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(phone,''), COALESCE(department,''),
		       active, created_at, updated_at
		FROM users
		WHERE email = ?
	`, email).Scan(
		&id, &u.Email, &u.PasswordHash, &u.Role, &tenantID, &vendorID,
		&u.FirstName, &u.LastName, &u.Phone, &u.Department,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, err
	}
	u.ID = asUUID(id)
	u.TenantID = asUUID(tenantID)
	if vendorID.Valid {
		v := asUUID(vendorID.String)
		u.VendorID = &v
	}
	return u, nil
}

func (r UserRepository) ExistsByEmail(email string) (bool, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r UserRepository) Insert(u models.User) error {
	var vendorID any
	if u.VendorID != nil {
		vendorID = u.VendorID.String()
	}
	_, err := r.db().Exec(`
		INSERT INTO users (id, email, password_hash, role, tenant_id, vendor_id,
			first_name, last_name, phone, department, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		u.ID.String(), u.Email, u.PasswordHash, u.Role, u.TenantID.String(), vendorID,
		NullIfEmpty(u.FirstName), NullIfEmpty(u.LastName),
		NullIfEmpty(u.Phone), NullIfEmpty(u.Department), u.Active,
	)
	return err
}

func (r UserRepository) GetByID(id uuid.UUID) (models.User, error) {
	var (
		u        models.User
		rawID    string
		tenantID string
		vendorID sql.NullString
	)
	err := r.db().QueryRow(`
		SELECT id, email, password_hash, role, tenant_id, vendor_id,
		       COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(phone,''), COALESCE(department,''),
		       active, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id.String()).Scan(
		&rawID, &u.Email, &u.PasswordHash, &u.Role, &tenantID, &vendorID,
		&u.FirstName, &u.LastName, &u.Phone, &u.Department,
		&u.Active, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return u, err
	}
	u.ID = asUUID(rawID)
	u.TenantID = asUUID(tenantID)
	if vendorID.Valid {
		v := asUUID(vendorID.String)
		u.VendorID = &v
	}
	return u, nil
}
