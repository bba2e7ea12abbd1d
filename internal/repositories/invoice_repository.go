package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "corptransit/internal/config"
	"corptransit/internal/domain"
	"corptransit/internal/domain/models"

	"github.com/google/uuid"
)

type InvoiceRepository struct {
	DB *sql.DB
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const invoiceColumns = `id, invoice_number, client_id, vendor_id,
	billing_period_start, billing_period_end, base_amount, extra_charges,
	total_amount, tax_amount, final_amount, status, due_date, paid_date,
	total_trips, total_km, total_hours, COALESCE(notes,''), created_at, updated_at`

func (r InvoiceRepository) scan(row interface{ Scan(...any) error }) (models.Invoice, error) {
	var (
		inv      models.Invoice
		id       string
		clientID string
		vendorID string

		baseAmount, extraCharges, totalAmount sql.NullString
		taxAmount, finalAmount                sql.NullString
		totalKm, totalHours                   sql.NullString
		dueDate, paidDate                     sql.NullTime
	)
	err := row.Scan(&id, &inv.InvoiceNumber, &clientID, &vendorID,
		&inv.BillingPeriodStart, &inv.BillingPeriodEnd, &baseAmount, &extraCharges,
		&totalAmount, &taxAmount, &finalAmount, &inv.Status, &dueDate, &paidDate,
		&inv.TotalTrips, &totalKm, &totalHours, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return inv, err
	}
	inv.ID = asUUID(id)
	inv.ClientID = asUUID(clientID)
	inv.VendorID = asUUID(vendorID)
	inv.BaseAmount = dec(baseAmount)
	inv.ExtraCharges = dec(extraCharges)
	inv.TotalAmount = dec(totalAmount)
	inv.TaxAmount = dec(taxAmount)
	inv.FinalAmount = dec(finalAmount)
	inv.TotalKm = dec(totalKm)
	inv.TotalHours = dec(totalHours)
	inv.DueDate = timePtr(dueDate)
	inv.PaidDate = timePtr(paidDate)
	return inv, nil
}

func (r InvoiceRepository) GetByID(id uuid.UUID) (models.Invoice, error) {
	row := r.db().QueryRow(`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id.String())
	inv, err := r.scan(row)
	if err == sql.ErrNoRows {
		return inv, domain.NotFoundError{Resource: "invoice"}
	}
	return inv, err
}

func (r InvoiceRepository) List(clientID, vendorID uuid.UUID, status string) ([]models.Invoice, error) {
	where := []string{}
	args := []any{}
	if clientID != uuid.Nil {
		where = append(where, "client_id = ?")
		args = append(args, clientID.String())
	}
	if vendorID != uuid.Nil {
		where = append(where, "vendor_id = ?")
		args = append(args, vendorID.String())
	}
	if strings.TrimSpace(status) != "" {
		where = append(where, "status = ?")
		args = append(args, strings.TrimSpace(status))
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY billing_period_start DESC, invoice_number ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Invoice{}
	for rows.Next() {
		inv, err := r.scan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// CountByNumberPrefix feeds invoice numbering: the next sequence for a month
// is the count of invoices already carrying that month's prefix, plus one.
func (r InvoiceRepository) CountByNumberPrefix(prefix string) (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM invoices WHERE invoice_number LIKE ?`, prefix+"%").Scan(&n)
	return n, err
}

func (r InvoiceRepository) Insert(inv models.Invoice) error {
	_, err := r.db().Exec(`
		INSERT INTO invoices (id, invoice_number, client_id, vendor_id,
			billing_period_start, billing_period_end, base_amount, extra_charges,
			total_amount, tax_amount, final_amount, status, due_date, paid_date,
			total_trips, total_km, total_hours, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
	`,
		inv.ID.String(), inv.InvoiceNumber, inv.ClientID.String(), inv.VendorID.String(),
		inv.BillingPeriodStart, inv.BillingPeriodEnd,
		inv.BaseAmount.String(), inv.ExtraCharges.String(),
		inv.TotalAmount.String(), inv.TaxAmount.String(), inv.FinalAmount.String(),
		inv.Status, inv.DueDate, inv.PaidDate,
		inv.TotalTrips, inv.TotalKm.String(), inv.TotalHours.String(),
		NullIfEmpty(inv.Notes),
	)
	return err
}

func (r InvoiceRepository) UpdateStatus(id uuid.UUID, status string, paidDate *time.Time) error {
	res, err := r.db().Exec(`
		UPDATE invoices
		SET status = ?, paid_date = ?, updated_at = NOW()
		WHERE id = ?
	`, status, paidDate, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "invoice"}
	}
	return nil
}

func (r InvoiceRepository) Delete(id uuid.UUID) error {
	res, err := r.db().Exec(`DELETE FROM invoices WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "invoice"}
	}
	return nil
}
