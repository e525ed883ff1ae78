package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a shopper account. Orders reference customers by ID.
type Customer struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	OrderCount int       `json:"order_count,omitempty"`
}
