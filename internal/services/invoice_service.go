package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/google/uuid"
)

const invoiceDueDays = 15

// InvoiceService turns a month's billing calculation into a persisted
// invoice and drives invoice status changes.
type InvoiceService struct {
	Billing     BillingService
	InvoiceRepo repositories.InvoiceRepository
	TripRepo    repositories.TripRepository
	RequestID   string
}

// GenerateForMonth runs the billing engine for the pair and persists the
// result as a DRAFT invoice numbered INV-YYYYMM-<seq>. The period's
// completed trips are flagged billed afterwards.
func (s InvoiceService) GenerateForMonth(ctx context.Context, clientID, vendorID uuid.UUID, month string) (models.Invoice, error) {
	var inv models.Invoice
	res, err := s.Billing.Calculate(ctx, clientID, vendorID, month)
	if err != nil {
		return inv, err
	}

	prefix := "INV-" + strings.ReplaceAll(res.BillingMonth, "-", "") + "-"
	seq, err := s.InvoiceRepo.CountByNumberPrefix(prefix)
	if err != nil {
		return inv, err
	}

	now := time.Now()
	due := now.AddDate(0, 0, invoiceDueDays)
	inv = models.Invoice{
		ID:                 uuid.New(),
		InvoiceNumber:      fmt.Sprintf("%s%03d", prefix, seq+1),
		ClientID:           clientID,
		VendorID:           vendorID,
		BillingPeriodStart: res.PeriodStart,
		BillingPeriodEnd:   res.PeriodEnd,
		BaseAmount:         res.PackageCost.Add(res.TripCharges).Add(res.DistanceCharges),
		ExtraCharges: res.ExtraTripCharges.
			Add(res.ExtraKmCharges).
			Add(res.ExtraHourCharges).
			Add(res.ExtraDistanceCharges),
		TotalAmount: res.TotalCost,
		TaxAmount:   res.TaxAmount,
		FinalAmount: res.GrandTotal,
		Status:      models.InvoiceDraft,
		DueDate:     &due,
		TotalTrips:  res.TripCount,
		TotalKm:     res.TotalDistanceKm,
		TotalHours:  res.TotalHours,
		Notes:       res.Notes,
	}
	if err := s.InvoiceRepo.Insert(inv); err != nil {
		return inv, err
	}
	if err := s.TripRepo.MarkBilledByPairBetween(clientID, vendorID, res.PeriodStart, res.PeriodEnd); err != nil {
		utils.LogEvent(s.RequestID, "invoices", "mark_billed_failed", err.Error())
	}

	utils.LogEvent(s.RequestID, "invoices", "generate",
		fmt.Sprintf("invoice=%s client=%s vendor=%s month=%s amount=%s",
			inv.InvoiceNumber, clientID, vendorID, res.BillingMonth, utils.FormatAmount(inv.FinalAmount)))
	return inv, nil
}

// ChangeStatus moves an invoice to SENT, PAID, or CANCELLED. Moving to PAID
// stamps the paid date.
func (s InvoiceService) ChangeStatus(id uuid.UUID, status string) (models.Invoice, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case models.InvoiceSent, models.InvoicePaid, models.InvoiceCancelled:
	default:
		return models.Invoice{}, domain.ValidationError{Field: "status", Msg: "must be SENT, PAID or CANCELLED"}
	}

	var paidDate *time.Time
	if status == models.InvoicePaid {
		now := time.Now()
		paidDate = &now
	}
	if err := s.InvoiceRepo.UpdateStatus(id, status, paidDate); err != nil {
		return models.Invoice{}, err
	}
	utils.LogEvent(s.RequestID, "invoices", "status_change", fmt.Sprintf("invoice=%s status=%s", id, status))
	return s.InvoiceRepo.GetByID(id)
}
