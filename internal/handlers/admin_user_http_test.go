package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
)

// fakeUserRepo honors the repo contract: unknown ids yield (nil, nil), never
// an error.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, email, _, _ string) (*models.User, error) {
	u := &models.User{ID: email, Email: email, Active: true}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, "", nil
		}
	}
	return nil, "", nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) SetVerifyToken(_ context.Context, _, _ string) error { return nil }

func (f *fakeUserRepo) VerifyByToken(_ context.Context, _ string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Active = active
	return u, nil
}

type fakeAdminProfiles struct {
	profiles map[string]*models.Profile
}

func (f *fakeAdminProfiles) Create(_ context.Context, userID, displayName, role string) error {
	f.profiles[userID] = &models.Profile{UserID: userID, DisplayName: displayName, Role: role}
	return nil
}

func (f *fakeAdminProfiles) Get(_ context.Context, userID string) (*models.Profile, error) {
	return f.profiles[userID], nil
}

func (f *fakeAdminProfiles) Assignments(_ context.Context, _ string) ([]models.RoleAssignment, error) {
	return nil, nil
}

func (f *fakeAdminProfiles) Update(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *fakeAdminProfiles) SetRoleOrg(_ context.Context, userID, role string, orgID *string) (*models.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	p.Role = role
	p.OrganizationID = orgID
	return p, nil
}

func (f *fakeAdminProfiles) List(_ context.Context, _, _ string, _ *string, _, _ int) ([]models.Profile, int, error) {
	return nil, 0, nil
}

func (f *fakeAdminProfiles) ListAgents(_ context.Context) ([]models.Profile, error) {
	return nil, nil
}

func (f *fakeAdminProfiles) AddAssignment(_ context.Context, userID, role string, orgID *string) (*models.RoleAssignment, error) {
	return &models.RoleAssignment{ID: "as-1", UserID: userID, Role: role, OrganizationID: orgID}, nil
}

func (f *fakeAdminProfiles) RemoveAssignment(_ context.Context, _ string) error { return nil }

func newAdminUserRouter(users *fakeUserRepo, profiles *fakeAdminProfiles, actorID string) http.Handler {
	h := NewAdminUserHTTP(users, profiles, NewAuditor(noopAudit{}, zerolog.Nop()))
	r := chi.NewRouter()
	if actorID != "" {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := context.WithValue(req.Context(), middleware.CtxUserID, actorID)
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
	}
	r.Patch("/users/{id}/role", h.SetRole())
	r.Patch("/users/{id}/active", h.SetActive())
	return r
}

func patchJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSetRoleUnknownUser(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	rec := patchJSON(h, "/users/nope/role", `{"role":"agent"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestSetRoleKnownUser(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{
		"u1": {UserID: "u1", DisplayName: "Luis", Role: "user"},
	}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	rec := patchJSON(h, "/users/u1/role", `{"role":"agent"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "agent", profiles.profiles["u1"].Role)
}

func TestSetRoleAdminRequiresSuperadmin(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{
		"u1": {UserID: "u1", Role: "user"},
	}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	// resolution in ctx is least-privileged here, so granting admin is denied
	rec := patchJSON(h, "/users/u1/role", `{"role":"admin"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user", profiles.profiles["u1"].Role)
}

func TestSetRoleSelfRejected(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{
		"admin-1": {UserID: "admin-1", Role: "admin"},
	}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	rec := patchJSON(h, "/users/admin-1/role", `{"role":"user"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "admin", profiles.profiles["admin-1"].Role)
}

func TestSetActiveUnknownUser(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	rec := patchJSON(h, "/users/nope/active", `{"active":false}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetActiveKnownUser(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "luis@example.com", Active: true},
	}}
	profiles := &fakeAdminProfiles{profiles: map[string]*models.Profile{}}
	h := newAdminUserRouter(users, profiles, "admin-1")

	rec := patchJSON(h, "/users/u1/active", `{"active":false}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, users.users["u1"].Active)
}
