// Package roles folds a user's profile role and role-assignment rows into
// one hierarchical permission view. It is the single place role precedence
// is decided; middleware and handlers must not re-derive it.
package roles

import "github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"

const (
	RoleUser       = "user"
	RoleAgent      = "agent"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

var rank = map[string]int{
	RoleUser:       0,
	RoleAgent:      1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

// Resolution is the effective permission view for one user.
// IsAdmin is hierarchical: admin-level screens must also admit superadmins.
type Resolution struct {
	Role            string
	OrganizationID  *string
	IsSuperadmin    bool
	IsAdmin         bool
	IsAgent         bool
	IsStaff         bool
	ProfileComplete bool
}

// Resolve computes the effective role from the profile row and any number of
// role_assignment rows. Precedence: superadmin > admin > agent > user; when
// the two sources disagree the highest-ranked role wins, so neither source
// can silently downgrade the other.
//
// A nil profile resolves to the least-privileged view (fail closed).
// OrganizationID always comes from the profile, independent of role.
func Resolve(p *models.Profile, assignments []models.RoleAssignment) Resolution {
	if p == nil {
		return Resolution{Role: RoleUser}
	}

	role := RoleUser
	if _, ok := rank[p.Role]; ok {
		role = p.Role
	}
	for _, a := range assignments {
		if rank[a.Role] > rank[role] {
			if _, ok := rank[a.Role]; ok {
				role = a.Role
			}
		}
	}

	res := Resolution{
		Role:            role,
		OrganizationID:  p.OrganizationID,
		IsSuperadmin:    role == RoleSuperadmin,
		ProfileComplete: p.IsComplete,
	}
	res.IsAdmin = role == RoleAdmin || role == RoleSuperadmin
	res.IsAgent = role == RoleAgent
	res.IsStaff = res.IsAdmin || res.IsAgent
	return res
}
