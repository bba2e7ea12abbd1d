package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses.
const (
	InvoiceDraft     = "DRAFT"
	InvoiceSent      = "SENT"
	InvoicePaid      = "PAID"
	InvoiceCancelled = "CANCELLED"
)

type Invoice struct {
	ID                 uuid.UUID       `json:"id"`
	InvoiceNumber      string          `json:"invoiceNumber"`
	ClientID           uuid.UUID       `json:"clientId"`
	VendorID           uuid.UUID       `json:"vendorId"`
	BillingPeriodStart time.Time       `json:"billingPeriodStart"`
	BillingPeriodEnd   time.Time       `json:"billingPeriodEnd"`
	BaseAmount         decimal.Decimal `json:"baseAmount"`
	ExtraCharges       decimal.Decimal `json:"extraCharges"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`
	Status             string          `json:"status"`
	DueDate            *time.Time      `json:"dueDate,omitempty"`
	PaidDate           *time.Time      `json:"paidDate,omitempty"`
	TotalTrips         int             `json:"totalTrips"`
	TotalKm            decimal.Decimal `json:"totalKm"`
	TotalHours         decimal.Decimal `json:"totalHours"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
