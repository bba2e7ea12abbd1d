package repositories

import (
	"database/sql"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type ClientRepository struct {
	DB *sql.DB
}

func (r ClientRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const clientColumns = `id, name, code, COALESCE(contact_email,''), COALESCE(contact_phone,''),
	COALESCE(address,''), COALESCE(gst_number,''), active, created_at, updated_at`

func (r ClientRepository) scan(row interface{ Scan(...any) error }) (models.Client, error) {
	var (
		c  models.Client
		id string
	)
	err := row.Scan(&id, &c.Name, &c.Code, &c.ContactEmail, &c.ContactPhone,
		&c.Address, &c.GSTNumber, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.ID = asUUID(id)
	return c, nil
}

func (r ClientRepository) GetByID(id uuid.UUID) (models.Client, error) {
	row := r.db().QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id.String())
	c, err := r.scan(row)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "client"}
	}
	return c, err
}

func (r ClientRepository) ExistsByCode(code string) (bool, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM clients WHERE code = ?`, code).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns clients, optionally filtered by a name/code substring.
func (r ClientRepository) List(q string, limit, offset int) ([]models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	if strings.TrimSpace(q) != "" {
		query += ` WHERE (name LIKE ? OR code LIKE ?)`
		like := "%" + strings.TrimSpace(q) + "%"
		args = append(args, like, like)
	}
	query += ` ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Client{}
	for rows.Next() {
		c, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ClientRepository) Insert(c models.Client) error {
	_, err := r.db().Exec(`
		INSERT INTO clients (id, name, code, contact_email, contact_phone, address,
			gst_number, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		c.ID.String(), c.Name, c.Code,
		NullIfEmpty(c.ContactEmail), NullIfEmpty(c.ContactPhone),
		NullIfEmpty(c.Address), NullIfEmpty(c.GSTNumber), c.Active,
	)
	return err
}

func (r ClientRepository) Update(c models.Client) error {
	res, err := r.db().Exec(`
		UPDATE clients
		SET name = ?, code = ?, contact_email = ?, contact_phone = ?,
			address = ?, gst_number = ?, active = ?, updated_at = NOW()
		WHERE id = ?
	`,
		c.Name, c.Code,
		NullIfEmpty(c.ContactEmail), NullIfEmpty(c.ContactPhone),
		NullIfEmpty(c.Address), NullIfEmpty(c.GSTNumber), c.Active,
		c.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "client"}
	}
	return nil
}

func (r ClientRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM clients WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "client"}
	}
	return nil
}
