package models

import "time"

// Organization is the tenant boundary: properties, inquiries and visits are
// scoped to one. A superadmin may query across all of them.
type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	ContactEmail string    `json:"contactEmail"`
	Phone        string    `json:"phone,omitempty"`
	Domain       string    `json:"domain,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
