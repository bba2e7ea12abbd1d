package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// ReportService renders billing statements and monthly summaries.
type ReportService struct {
	Billing   BillingService
	ModelRepo repositories.BillingModelRepository
	RequestID string
}

// PairBillingSummary is one row of the monthly summary report.
type PairBillingSummary struct {
	ClientID   uuid.UUID       `json:"clientId"`
	VendorID   uuid.UUID       `json:"vendorId"`
	ModelType  string          `json:"modelType"`
	TripCount  int             `json:"tripCount"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

type MonthlySummary struct {
	Month      string               `json:"month"`
	Pairs      []PairBillingSummary `json:"pairs"`
	GrandTotal decimal.Decimal      `json:"grandTotal"`
}

// BillingStatementPDF runs a fresh calculation for the pair and renders it
// as a PDF statement. Returns the document bytes and a download filename.
func (s ReportService) BillingStatementPDF(ctx context.Context, clientID, vendorID uuid.UUID, month string) ([]byte, string, error) {
	res, err := s.Billing.Calculate(ctx, clientID, vendorID, month)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "reports", "billing_statement",
		fmt.Sprintf("client=%s vendor=%s month=%s", clientID, vendorID, res.BillingMonth))
	return buildBillingStatementPDF(res)
}

// MonthlySummaryReport calculates a month's billing for every pair with an
// active billing model. A pair whose calculation fails is skipped, not
// fatal for the report.
func (s ReportService) MonthlySummaryReport(ctx context.Context, month string) (MonthlySummary, error) {
	_, _, label, err := utils.MonthWindow(month)
	if err != nil {
		return MonthlySummary{}, domain.ValidationError{Field: "month", Msg: err.Error(), Err: err}
	}
	active, err := s.ModelRepo.ListActive()
	if err != nil {
		return MonthlySummary{}, err
	}

	out := MonthlySummary{Month: label, Pairs: []PairBillingSummary{}}
	for _, m := range active {
		res, err := s.Billing.Calculate(ctx, m.ClientID, m.VendorID, label)
		if err != nil {
			utils.LogEvent(s.RequestID, "reports", "summary_pair_skipped",
				fmt.Sprintf("client=%s vendor=%s: %v", m.ClientID, m.VendorID, err))
			continue
		}
		out.Pairs = append(out.Pairs, PairBillingSummary{
			ClientID:   m.ClientID,
			VendorID:   m.VendorID,
			ModelType:  res.ModelType,
			TripCount:  res.TripCount,
			TotalCost:  res.TotalCost,
			TaxAmount:  res.TaxAmount,
			GrandTotal: res.GrandTotal,
		})
		out.GrandTotal = out.GrandTotal.Add(res.GrandTotal)
	}
	return out, nil
}

func buildBillingStatementPDF(res BillingResult) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Billing Statement", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BILLING STATEMENT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Client        : %s", res.ClientID),
		fmt.Sprintf("Vendor        : %s", res.VendorID),
		fmt.Sprintf("Billing Month : %s", res.BillingMonth),
		fmt.Sprintf("Pricing Model : %s", res.ModelType),
		fmt.Sprintf("Generated     : %s", time.Now().Format("2006-01-02 15:04")),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	charges := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Package cost", res.PackageCost},
		{"Trip charges", res.TripCharges},
		{"Distance charges", res.DistanceCharges},
		{"Extra trip charges", res.ExtraTripCharges},
		{"Extra km charges", res.ExtraKmCharges},
		{"Extra hour charges", res.ExtraHourCharges},
		{"Extra distance charges", res.ExtraDistanceCharges},
	}
	for _, c := range charges {
		if c.amount.IsZero() {
			continue
		}
		pdf.Cell(110, 6, c.label)
		pdf.CellFormat(40, 6, utils.FormatAmount(c.amount), "", 0, "R", false, 0, "")
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	totals := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Total", res.TotalCost},
		{"Tax (18%)", res.TaxAmount},
		{"Grand Total", res.GrandTotal},
	}
	for _, c := range totals {
		pdf.Cell(110, 7, c.label)
		pdf.CellFormat(40, 7, utils.FormatAmount(c.amount), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Trips: %d   Total km: %s   Total hours: %s",
		res.TripCount, res.TotalDistanceKm, res.TotalHours))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, res.Notes, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BILLING_%s_%s_%s.pdf", res.ClientID, res.VendorID, res.BillingMonth)
	return buf.Bytes(), filename, nil
}
