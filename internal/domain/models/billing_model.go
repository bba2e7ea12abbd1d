package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing model types. Exactly one model is active per client/vendor pair;
// fields a type does not use are stored but ignored.
const (
	ModelTrip    = "TRIP"
	ModelPackage = "PACKAGE"
	ModelHybrid  = "HYBRID"
)

type BillingModel struct {
	ID        uuid.UUID `json:"id"`
	ClientID  uuid.UUID `json:"clientId"`
	VendorID  uuid.UUID `json:"vendorId"`
	ModelType string    `json:"modelType"`

	// Trip-based pricing
	RatePerTrip decimal.Decimal `json:"ratePerTrip"`
	RatePerKm   decimal.Decimal `json:"ratePerKm"`

	// Package-based pricing
	PackageMonthlyRate   decimal.Decimal `json:"packageMonthlyRate"`
	PackageTripsIncluded int             `json:"packageTripsIncluded"`
	PackageKmsIncluded   decimal.Decimal `json:"packageKmsIncluded"`

	// Extra charges
	ExtraTripRate decimal.Decimal `json:"extraTripRate"`
	ExtraKmRate   decimal.Decimal `json:"extraKmRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`

	// Stored for schema parity with older deployments; no formula reads it.
	PeakHourMultiplier decimal.Decimal `json:"peakHourMultiplier"`

	// Standard limits per trip
	StandardTripKm    decimal.Decimal `json:"standardTripKm"`
	StandardTripHours decimal.Decimal `json:"standardTripHours"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// KnownModelType reports whether t is one of the recognized pricing models.
func KnownModelType(t string) bool {
	switch t {
	case ModelTrip, ModelPackage, ModelHybrid:
		return true
	}
	return false
}
