package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/config"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// fakeProfiles serves Get/Assignments; the rest of the interface is unused by
// the middleware under test.
type fakeProfiles struct {
	profiles    map[string]*models.Profile
	assignments map[string][]models.RoleAssignment
	failGet     bool
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if f.failGet {
		return nil, context.DeadlineExceeded
	}
	return f.profiles[userID], nil
}

func (f *fakeProfiles) Assignments(ctx context.Context, userID string) ([]models.RoleAssignment, error) {
	return f.assignments[userID], nil
}

func (f *fakeProfiles) Create(ctx context.Context, userID, displayName, role string) error {
	return nil
}

func (f *fakeProfiles) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	return p, nil
}

func (f *fakeProfiles) SetRoleOrg(ctx context.Context, userID, role string, orgID *string) (*models.Profile, error) {
	return nil, nil
}

func (f *fakeProfiles) List(ctx context.Context, q, role string, orgID *string, limit, offset int) ([]models.Profile, int, error) {
	return nil, 0, nil
}

func (f *fakeProfiles) ListAgents(ctx context.Context) ([]models.Profile, error) { return nil, nil }

func (f *fakeProfiles) AddAssignment(ctx context.Context, userID, role string, orgID *string) (*models.RoleAssignment, error) {
	return nil, nil
}

func (f *fakeProfiles) RemoveAssignment(ctx context.Context, id string) error { return nil }

const secret = "test-secret"

// adminChain wires the guard pipeline exactly as the router does.
func adminChain(profiles *fakeProfiles, final http.HandlerFunc) http.Handler {
	cfg := config.Config{SessionSecret: secret, SiteURL: "http://localhost:3000"}
	log := zerolog.Nop()

	var h http.Handler = final
	h = OrgScope(h)
	h = RequireCompleteProfile(h)
	h = RequireStaff(h)
	h = WithRole(log, profiles)(h)
	h = RequireAuth(cfg.SiteURL)(h)
	h = WithAuth(log, cfg)(h)
	return h
}

func doReq(t *testing.T, h http.Handler, userID, email string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/properties", nil)
	if userID != "" {
		tok, err := utils.SignJWT(secret, userID, email, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func echoScope(t *testing.T) (http.HandlerFunc, *struct {
	called bool
	scope  *string
}) {
	out := &struct {
		called bool
		scope  *string
	}{}
	return func(w http.ResponseWriter, r *http.Request) {
		out.called = true
		out.scope = EffectiveOrgID(r.Context())
		w.WriteHeader(http.StatusOK)
	}, out
}

func TestGuardRejectsAnonymousWithReturnURL(t *testing.T) {
	final, state := echoScope(t)
	h := adminChain(&fakeProfiles{}, final)

	rec := doReq(t, h, "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, state.called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["signInUrl"], "next=")
}

func TestGuardDeniesNonStaffWithSupportPayload(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{
		"u1": {UserID: "u1", Role: "user"},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	rec := doReq(t, h, "u1", "ana@example.com", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, state.called)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ana@example.com", body["email"])
	assert.Equal(t, "user", body["role"])
}

func TestGuardFailsClosedOnProfileFetchError(t *testing.T) {
	profiles := &fakeProfiles{failGet: true, profiles: map[string]*models.Profile{
		"u1": {UserID: "u1", Role: "admin"},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	rec := doReq(t, h, "u1", "ana@example.com", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, state.called)
}

func TestGuardHoldsIncompleteAgentAtOnboarding(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{
		"a1": {UserID: "a1", Role: "agent", IsComplete: false},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	rec := doReq(t, h, "a1", "agent@example.com", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, state.called)
	assert.Contains(t, rec.Body.String(), "profile incomplete")
}

func TestGuardWarnsStaffWithoutOrganization(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{
		"a1": {UserID: "a1", Role: "admin"},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	rec := doReq(t, h, "a1", "admin@example.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.called)
	assert.Equal(t, "no organization assigned", rec.Header().Get("X-Org-Warning"))
	assert.Nil(t, state.scope)
}

func TestOrgScopeForcedForNonSuperadmin(t *testing.T) {
	org := "1b8a0f3e-4d2c-4e6f-8a1b-2c3d4e5f6a7b"
	other := "9f8e7d6c-5b4a-4392-8171-605f4e3d2c1b"
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{
		"a1": {UserID: "a1", Role: "admin", OrganizationID: &org},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	// an admin asking for another org (or "all") still gets their own
	for _, sel := range []string{other, "all"} {
		rec := doReq(t, h, "a1", "admin@example.com", map[string]string{"X-Org": sel})
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, state.scope)
		assert.Equal(t, org, *state.scope)
	}
}

func TestOrgScopeSuperadminSelection(t *testing.T) {
	own := "1b8a0f3e-4d2c-4e6f-8a1b-2c3d4e5f6a7b"
	other := "9f8e7d6c-5b4a-4392-8171-605f4e3d2c1b"
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{
		"s1": {UserID: "s1", Role: "superadmin", OrganizationID: &own},
	}}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	// default and "all" mean unscoped
	rec := doReq(t, h, "s1", "root@example.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, state.scope)

	rec = doReq(t, h, "s1", "root@example.com", map[string]string{"X-Org": "all"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, state.scope)

	// pinning to one org
	rec = doReq(t, h, "s1", "root@example.com", map[string]string{"X-Org": other})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, state.scope)
	assert.Equal(t, other, *state.scope)

	// garbage selection falls back to unscoped rather than erroring
	rec = doReq(t, h, "s1", "root@example.com", map[string]string{"X-Org": "not-a-uuid"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, state.scope)
}

func TestGuardRoleAssignmentPrecedence(t *testing.T) {
	profiles := &fakeProfiles{
		profiles: map[string]*models.Profile{
			"u1": {UserID: "u1", Role: "user"},
		},
		assignments: map[string][]models.RoleAssignment{
			"u1": {{Role: "agent"}, {Role: "admin"}},
		},
	}
	final, state := echoScope(t)
	h := adminChain(profiles, final)

	rec := doReq(t, h, "u1", "u1@example.com", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, state.called)
}
