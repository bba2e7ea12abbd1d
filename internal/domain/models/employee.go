package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"clientId"`
	EmployeeCode string    `json:"employeeCode"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Department   string    `json:"department,omitempty"`
	HomeAddress  string    `json:"homeAddress,omitempty"`
	PickupPoint  string    `json:"pickupPoint,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
