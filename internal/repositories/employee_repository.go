package repositories

import (
	"database/sql"
	"strings"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type EmployeeRepository struct {
	DB *sql.DB
}

func (r EmployeeRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const employeeColumns = `id, client_id, employee_code, name, COALESCE(email,''),
	COALESCE(phone,''), COALESCE(department,''), COALESCE(home_address,''),
	COALESCE(pickup_point,''), active, created_at, updated_at`

func (r EmployeeRepository) scan(row interface{ Scan(...any) error }) (models.Employee, error) {
	var (
		e        models.Employee
		id       string
		clientID string
	)
	err := row.Scan(&id, &clientID, &e.EmployeeCode, &e.Name, &e.Email,
		&e.Phone, &e.Department, &e.HomeAddress, &e.PickupPoint,
		&e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	e.ID = asUUID(id)
	e.ClientID = asUUID(clientID)
	return e, nil
}

func (r EmployeeRepository) GetByID(id uuid.UUID) (models.Employee, error) {
	row := r.db().QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id.String())
	e, err := r.scan(row)
	if err == sql.ErrNoRows {
		return e, domain.NotFoundError{Resource: "employee"}
	}
	return e, err
}

func (r EmployeeRepository) ExistsByCode(clientID uuid.UUID, code string) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM employees WHERE client_id = ? AND employee_code = ?`,
		clientID.String(), code).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r EmployeeRepository) List(clientID uuid.UUID, q string, limit, offset int) ([]models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	where := []string{}
	args := []any{}
	if clientID != uuid.Nil {
		where = append(where, "client_id = ?")
		args = append(args, clientID.String())
	}
	if strings.TrimSpace(q) != "" {
		where = append(where, "(name LIKE ? OR employee_code LIKE ?)")
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

	out := []models.Employee{}
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EmployeeRepository) Insert(e models.Employee) error {
	_, err := r.db().Exec(`
		INSERT INTO employees (id, client_id, employee_code, name, email, phone,
			department, home_address, pickup_point, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		e.ID.String(), e.ClientID.String(), e.EmployeeCode, e.Name,
		NullIfEmpty(e.Email), NullIfEmpty(e.Phone), NullIfEmpty(e.Department),
		NullIfEmpty(e.HomeAddress), NullIfEmpty(e.PickupPoint), e.Active,
	)
	return err
}

func (r EmployeeRepository) Update(e models.Employee) error {
	res, err := r.db().Exec(`
		UPDATE employees
		SET employee_code = ?, name = ?, email = ?, phone = ?, department = ?,
			home_address = ?, pickup_point = ?, active = ?, updated_at = NOW()
		WHERE id = ?
	`,
		e.EmployeeCode, e.Name,
		NullIfEmpty(e.Email), NullIfEmpty(e.Phone), NullIfEmpty(e.Department),
		NullIfEmpty(e.HomeAddress), NullIfEmpty(e.PickupPoint), e.Active,
		e.ID.String(),
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "employee"}
	}
	return nil
}

func (r EmployeeRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM employees WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "employee"}
	}
	return nil
}
