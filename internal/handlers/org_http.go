package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// OrgHTTP manages organizations. The routes sit behind the superadmin guard;
// listing is also exposed to plain admins so the org picker can render.
type OrgHTTP struct {
	repo  repository.OrganizationRepository
	audit *Auditor
}

func NewOrgHTTP(repo repository.OrganizationRepository, audit *Auditor) *OrgHTTP {
	return &OrgHTTP{repo: repo, audit: audit}
}

type orgIn struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ContactEmail string `json:"contactEmail"`
	Phone        string `json:"phone"`
	Domain       string `json:"domain"`
	Active       bool   `json:"active"`
}

func (in *orgIn) clean() string {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(strings.ToLower(in.Slug))
	in.ContactEmail = strings.TrimSpace(strings.ToLower(in.ContactEmail))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Domain = strings.TrimSpace(strings.ToLower(in.Domain))
	if in.Name == "" {
		return "name is required"
	}
	if in.Slug == "" {
		return "slug is required"
	}
	return ""
}

func (in *orgIn) apply(o *models.Organization) {
	o.Name = in.Name
	o.Slug = in.Slug
	o.ContactEmail = in.ContactEmail
	o.Phone = in.Phone
	o.Domain = in.Domain
	o.Active = in.Active
}

// GET /api/admin/organizations
func (h *OrgHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load organizations")
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/admin/organizations
func (h *OrgHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in orgIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.clean(); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		o := &models.Organization{}
		in.apply(o)
		if err := h.repo.Create(r.Context(), o); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create organization")
			return
		}
		h.audit.record(r, "create", "organizations", o.ID, in)
		utils.JSON(w, http.StatusCreated, o)
	}
}

// PUT /api/admin/organizations/{id}
func (h *OrgHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in orgIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.clean(); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		existing, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load organization")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		in.apply(existing)
		if err := h.repo.Update(r.Context(), existing); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update organization")
			return
		}
		h.audit.record(r, "update", "organizations", id, in)
		utils.JSON(w, http.StatusOK, existing)
	}
}

// DELETE /api/admin/organizations/{id}
func (h *OrgHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		existing, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load organization")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if err := h.repo.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not delete organization")
			return
		}
		h.audit.record(r, "delete", "organizations", id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
