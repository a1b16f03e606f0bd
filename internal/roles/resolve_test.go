package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
)

func strptr(s string) *string { return &s }

func TestResolveMissingProfileFailsClosed(t *testing.T) {
	res := Resolve(nil, nil)
	assert.Equal(t, RoleUser, res.Role)
	assert.False(t, res.IsStaff)
	assert.False(t, res.IsAdmin)
	assert.False(t, res.IsSuperadmin)
	assert.Nil(t, res.OrganizationID)
}

func TestResolveSuperadmin(t *testing.T) {
	res := Resolve(&models.Profile{Role: RoleSuperadmin}, nil)
	assert.True(t, res.IsSuperadmin)
	assert.True(t, res.IsAdmin)
	assert.True(t, res.IsStaff)
	assert.False(t, res.IsAgent)
}

func TestResolvePlainUser(t *testing.T) {
	res := Resolve(&models.Profile{Role: RoleUser}, nil)
	assert.Equal(t, RoleUser, res.Role)
	assert.False(t, res.IsStaff)
	assert.False(t, res.IsAdmin)
	assert.False(t, res.IsAgent)
	assert.False(t, res.IsSuperadmin)
}

func TestResolvePrecedenceAcrossAssignments(t *testing.T) {
	// A user holding both "admin" and "agent" rows resolves to admin.
	res := Resolve(&models.Profile{Role: RoleUser}, []models.RoleAssignment{
		{Role: RoleAgent},
		{Role: RoleAdmin},
	})
	assert.Equal(t, RoleAdmin, res.Role)
	assert.True(t, res.IsAdmin)
	assert.True(t, res.IsStaff)
	assert.False(t, res.IsAgent)
}

func TestResolveHighestSourceWins(t *testing.T) {
	// profile says admin, assignments only agent: profile wins.
	res := Resolve(&models.Profile{Role: RoleAdmin}, []models.RoleAssignment{{Role: RoleAgent}})
	assert.Equal(t, RoleAdmin, res.Role)

	// assignments outrank the profile: assignment wins.
	res = Resolve(&models.Profile{Role: RoleAgent}, []models.RoleAssignment{{Role: RoleSuperadmin}})
	assert.Equal(t, RoleSuperadmin, res.Role)
}

func TestResolveUnknownRoleTreatedAsUser(t *testing.T) {
	res := Resolve(&models.Profile{Role: "owner"}, []models.RoleAssignment{{Role: "manager"}})
	assert.Equal(t, RoleUser, res.Role)
	assert.False(t, res.IsStaff)
}

func TestResolveOrgIndependentOfRole(t *testing.T) {
	org := strptr("org-1")
	res := Resolve(&models.Profile{Role: RoleUser, OrganizationID: org}, nil)
	assert.Equal(t, org, res.OrganizationID)
}

func TestResolveAgentFlags(t *testing.T) {
	res := Resolve(&models.Profile{Role: RoleAgent, IsComplete: true}, nil)
	assert.True(t, res.IsAgent)
	assert.True(t, res.IsStaff)
	assert.False(t, res.IsAdmin)
	assert.True(t, res.ProfileComplete)
}
