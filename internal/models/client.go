package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	ContactPerson  *string   `json:"contact_person,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	GSTIN          *string   `json:"gstin,omitempty"`
	BillingAddress *string   `json:"billing_address,omitempty"`
	City           *string   `json:"city,omitempty"`
	State          *string   `json:"state,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
