package models

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"` // admin / operator
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}
