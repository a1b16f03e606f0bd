package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/roles"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// AdminUserHTTP covers the back-office user directory: listing profiles,
// changing roles and organizations, disabling accounts and managing extra
// role assignments. Role changes are restricted so admins can never mint a
// role above their own.
type AdminUserHTTP struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	audit    *Auditor
}

func NewAdminUserHTTP(users repository.UserRepository, profiles repository.ProfileRepository, audit *Auditor) *AdminUserHTTP {
	return &AdminUserHTTP{users: users, profiles: profiles, audit: audit}
}

// GET /api/admin/users
func (h *AdminUserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		items, total, err := h.profiles.List(r.Context(),
			qv.Get("q"),
			qv.Get("role"),
			middleware.EffectiveOrgID(r.Context()),
			utils.QueryInt(qv, "limit", 20),
			utils.QueryInt(qv, "offset", 0),
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load users")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// canGrant reports whether the caller may hand out the given role. Only a
// superadmin may grant admin or superadmin.
func canGrant(res roles.Resolution, role string) bool {
	switch role {
	case roles.RoleSuperadmin, roles.RoleAdmin:
		return res.IsSuperadmin
	case roles.RoleAgent, roles.RoleUser:
		return true
	default:
		return false
	}
}

// PATCH /api/admin/users/{id}/role
func (h *AdminUserHTTP) SetRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Role           string  `json:"role"`
			OrganizationID *string `json:"organizationId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		res := middleware.Resolution(r.Context())
		if !canGrant(res, in.Role) {
			utils.Error(w, http.StatusForbidden, "cannot grant this role")
			return
		}
		// self-demotion lockout guard
		if actor, _ := utils.GetString(r.Context(), middleware.CtxUserID); actor == id {
			utils.Error(w, http.StatusBadRequest, "cannot change your own role")
			return
		}

		orgID := in.OrganizationID
		if !res.IsSuperadmin {
			// admins can only place users inside their own organization
			orgID = res.OrganizationID
		}

		p, err := h.profiles.SetRoleOrg(r.Context(), id, in.Role, orgID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update user")
			return
		}
		if p == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.audit.record(r, "update", "profiles", id, in)
		utils.JSON(w, http.StatusOK, p)
	}
}

// PATCH /api/admin/users/{id}/active
func (h *AdminUserHTTP) SetActive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Active bool `json:"active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if actor, _ := utils.GetString(r.Context(), middleware.CtxUserID); actor == id {
			utils.Error(w, http.StatusBadRequest, "cannot disable your own account")
			return
		}
		u, err := h.users.SetActive(r.Context(), id, in.Active)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update user")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.audit.record(r, "update", "users", id, in)
		utils.JSON(w, http.StatusOK, u)
	}
}

// GET /api/admin/users/{id}/assignments
func (h *AdminUserHTTP) ListAssignments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		items, err := h.profiles.Assignments(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load assignments")
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/admin/users/{id}/assignments
func (h *AdminUserHTTP) AddAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Role           string  `json:"role"`
			OrganizationID *string `json:"organizationId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		res := middleware.Resolution(r.Context())
		if !canGrant(res, in.Role) {
			utils.Error(w, http.StatusForbidden, "cannot grant this role")
			return
		}
		orgID := in.OrganizationID
		if !res.IsSuperadmin {
			orgID = res.OrganizationID
		}
		a, err := h.profiles.AddAssignment(r.Context(), id, in.Role, orgID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not add assignment")
			return
		}
		h.audit.record(r, "create", "role_assignments", a.ID, in)
		utils.JSON(w, http.StatusCreated, a)
	}
}

// DELETE /api/admin/users/{id}/assignments/{assignmentID}
func (h *AdminUserHTTP) RemoveAssignment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assignmentID := chi.URLParam(r, "assignmentID")
		if _, err := uuid.Parse(assignmentID); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid assignment id")
			return
		}
		if err := h.profiles.RemoveAssignment(r.Context(), assignmentID); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not remove assignment")
			return
		}
		h.audit.record(r, "delete", "role_assignments", assignmentID, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
