package models

import "time"

// ServiceZone is a named geographic area (colonia, municipio) properties and
// agents attach to.
type ServiceZone struct {
	ID        string    `json:"id"`
	NameES    string    `json:"nameEs"`
	NameEN    string    `json:"nameEn"`
	Slug      string    `json:"slug"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// SiteSetting is one back-office setting; Value is raw jsonb.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}
