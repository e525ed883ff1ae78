package models

import "time"

// Setting is a key/value storefront configuration entry (store name,
// default currency, support email, ...).
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
