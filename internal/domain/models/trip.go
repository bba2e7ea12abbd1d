package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip statuses.
const (
	TripScheduled  = "SCHEDULED"
	TripInProgress = "IN_PROGRESS"
	TripCompleted  = "COMPLETED"
	TripCancelled  = "CANCELLED"
)

// Trip types.
const (
	TripHomeToOffice = "HOME_TO_OFFICE"
	TripOfficeToHome = "OFFICE_TO_HOME"
	TripAdhoc        = "ADHOC"
)

type Trip struct {
	ID             uuid.UUID       `json:"id"`
	ClientID       uuid.UUID       `json:"clientId"`
	VendorID       uuid.UUID       `json:"vendorId"`
	EmployeeID     uuid.UUID       `json:"employeeId"`
	VehicleNumber  string          `json:"vehicleNumber"`
	DriverName     string          `json:"driverName,omitempty"`
	DriverPhone    string          `json:"driverPhone,omitempty"`
	TripStartTime  time.Time       `json:"tripStartTime"`
	TripEndTime    *time.Time      `json:"tripEndTime,omitempty"`
	PickupLocation string          `json:"pickupLocation"`
	DropLocation   string          `json:"dropLocation,omitempty"`
	DistanceKm     decimal.Decimal `json:"distanceKm"`
	DurationHours  decimal.Decimal `json:"durationHours"`
	TripType       string          `json:"tripType,omitempty"`
	Status         string          `json:"status"`
	Billed         bool            `json:"billed"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
