package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/validation"
)

// AdminPropertyHTTP is the back-office property screen: full CRUD, image
// management and the featured toggle, all org-scoped and audited.
type AdminPropertyHTTP struct {
	repo  repository.PropertyRepository
	audit *Auditor
}

func NewAdminPropertyHTTP(repo repository.PropertyRepository, audit *Auditor) *AdminPropertyHTTP {
	return &AdminPropertyHTTP{repo: repo, audit: audit}
}

// GET /api/admin/properties
// Unlike the public list, all statuses show.
func (h *AdminPropertyHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.PropertyFilter{
			Q:         qv.Get("q"),
			Type:      qv.Get("type"),
			Operation: qv.Get("operation"),
			Status:    qv.Get("status"),
			ZoneID:    qv.Get("zone"),
			AgentID:   qv.Get("agent"),
			OrgID:     middleware.EffectiveOrgID(r.Context()),
			Limit:     utils.QueryInt(qv, "limit", 20),
			Offset:    utils.QueryInt(qv, "offset", 0),
			Sort:      qv.Get("sort"),
			Order:     qv.Get("order"),
		}
		items, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load properties")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// getScoped loads a property and enforces the caller's org scope; outside the
// scope it reports "not found", never "forbidden", so existence doesn't leak.
func (h *AdminPropertyHTTP) getScoped(r *http.Request, id string) (*models.Property, error) {
	p, err := h.repo.Get(r.Context(), id)
	if err != nil || p == nil {
		return p, err
	}
	if scope := middleware.EffectiveOrgID(r.Context()); scope != nil {
		if p.OrgID == nil || *p.OrgID != *scope {
			return nil, nil
		}
	}
	return p, nil
}

// POST /api/admin/properties
func (h *AdminPropertyHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f validation.PropertyForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		lat, lng, fe := f.Validate()
		if fe != nil {
			utils.FieldError(w, fe.Field, fe.Message)
			return
		}

		orgID := middleware.EffectiveOrgID(r.Context())
		if orgID == nil {
			// superadmin in "all organizations" view must pin one to create
			res := middleware.Resolution(r.Context())
			orgID = res.OrganizationID
		}

		p := f.ToModel(lat, lng, orgID)
		if err := h.repo.Create(r.Context(), p); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create property")
			return
		}
		h.audit.record(r, "create", "properties", p.ID, f)
		utils.JSON(w, http.StatusCreated, p)
	}
}

// PUT /api/admin/properties/{id}
func (h *AdminPropertyHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		var f validation.PropertyForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		lat, lng, fe := f.Validate()
		if fe != nil {
			utils.FieldError(w, fe.Field, fe.Message)
			return
		}

		p := f.ToModel(lat, lng, existing.OrgID)
		p.ID = existing.ID
		if err := h.repo.Update(r.Context(), p); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update property")
			return
		}
		h.audit.record(r, "update", "properties", p.ID, f)

		updated, err := h.repo.Get(r.Context(), p.ID)
		if err != nil || updated == nil {
			utils.Error(w, http.StatusInternalServerError, "property not found after update")
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// DELETE /api/admin/properties/{id}
func (h *AdminPropertyHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if err := h.repo.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not delete property")
			return
		}
		h.audit.record(r, "delete", "properties", id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

// PATCH /api/admin/properties/{id}/featured
func (h *AdminPropertyHTTP) SetFeatured() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Featured bool `json:"featured"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if err := h.repo.SetFeatured(r.Context(), id, in.Featured); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update property")
			return
		}
		h.audit.record(r, "update", "properties", id, in)
		utils.JSON(w, http.StatusOK, map[string]bool{"featured": in.Featured})
	}
}

// POST /api/admin/properties/{id}/images
func (h *AdminPropertyHTTP) AddImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			URL      string          `json:"url"`
			Variants json.RawMessage `json:"variants"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.URL == "" {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}

		img := &models.PropertyImage{PropertyID: id, URL: in.URL, Variants: in.Variants}
		if err := h.repo.AddImage(r.Context(), img); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not attach image")
			return
		}
		h.audit.record(r, "create", "property_images", img.ID, in)
		utils.JSON(w, http.StatusCreated, img)
	}
}

// DELETE /api/admin/properties/{id}/images/{imageID}
func (h *AdminPropertyHTTP) RemoveImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		imageID := chi.URLParam(r, "imageID")
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		url, err := h.repo.RemoveImage(r.Context(), imageID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not remove image")
			return
		}
		if url == "" {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.audit.record(r, "delete", "property_images", imageID, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}

// PUT /api/admin/properties/{id}/images/order
func (h *AdminPropertyHTTP) ReorderImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			ImageIDs []string `json:"imageIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || len(in.ImageIDs) == 0 {
			utils.Error(w, http.StatusBadRequest, "invalid request")
			return
		}
		existing, err := h.getScoped(r, id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if existing == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		if err := h.repo.ReorderImages(r.Context(), id, in.ImageIDs); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not reorder images")
			return
		}
		h.audit.record(r, "update", "property_images", id, in)
		utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
