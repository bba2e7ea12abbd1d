package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vendor is a transport supplier serving one client.
type Vendor struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Code               string          `json:"code"` // e.g. "OLA001"
	ClientID           uuid.UUID       `json:"clientId"`
	ServiceType        string          `json:"serviceType,omitempty"`
	Address            string          `json:"address,omitempty"`
	ContactEmail       string          `json:"contactEmail,omitempty"`
	ContactPhone       string          `json:"contactPhone,omitempty"`
	ContactPerson      string          `json:"contactPerson,omitempty"`
	BankAccountDetails string          `json:"bankAccountDetails,omitempty"`
	TaxID              string          `json:"taxId,omitempty"`
	GSTNumber          string          `json:"gstNumber,omitempty"`
	ServiceRating      decimal.Decimal `json:"serviceRating"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}
