package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin       = "ADMIN"
	RoleClientAdmin = "CLIENT_ADMIN"
	RoleVendorAdmin = "VENDOR_ADMIN"
	RoleEmployee    = "EMPLOYEE"
)

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	TenantID     uuid.UUID  `json:"tenantId"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	FirstName    string     `json:"firstName,omitempty"`
	LastName     string     `json:"lastName,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Department   string     `json:"department,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
