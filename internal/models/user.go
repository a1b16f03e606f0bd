package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the one-to-one extension of a User. Agent-specific fields are
// empty for plain users; IsComplete gates agent-area access until onboarding
// finishes.
type Profile struct {
	UserID         string    `json:"userId"`
	Email          string    `json:"email,omitempty"` // joined
	DisplayName    string    `json:"displayName"`
	Role           string    `json:"role"` // user | agent | admin | superadmin
	OrganizationID *string   `json:"organizationId"`
	Phone          string    `json:"phone,omitempty"`
	PhotoURL       string    `json:"photoUrl,omitempty"`
	BioES          string    `json:"bioEs,omitempty"`
	BioEN          string    `json:"bioEn,omitempty"`
	Languages      []string  `json:"languages,omitempty"`
	ServiceZoneIDs []string  `json:"serviceZoneIds,omitempty"`
	Specialty      string    `json:"specialty,omitempty"`
	SocialLinks    []byte    `json:"-"` // raw jsonb, passed through
	IsComplete     bool      `json:"isComplete"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// RoleAssignment is one user→role row; a user may hold several and the
// effective role is folded by precedence in the roles package.
type RoleAssignment struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Role           string    `json:"role"`
	OrganizationID *string   `json:"organizationId"`
	CreatedAt      time.Time `json:"createdAt"`
}
