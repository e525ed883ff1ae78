package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Reviews are hidden from the storefront
// until a staff member approves them.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Body       string    `json:"body"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}
