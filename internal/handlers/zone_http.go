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

// ZoneHTTP serves the service-zone catalog: the public site lists active
// zones for filters, the back office manages the full set.
type ZoneHTTP struct {
	repo  repository.ZoneRepository
	audit *Auditor
}

func NewZoneHTTP(repo repository.ZoneRepository, audit *Auditor) *ZoneHTTP {
	return &ZoneHTTP{repo: repo, audit: audit}
}

// GET /api/zones
func (h *ZoneHTTP) ListPublic() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context(), true)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load zones")
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// GET /api/admin/zones
func (h *ZoneHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context(), false)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load zones")
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

type zoneIn struct {
	NameES string `json:"name_es"`
	NameEN string `json:"name_en"`
	Slug   string `json:"slug"`
	Active bool   `json:"active"`
}

func (in *zoneIn) clean() string {
	in.NameES = strings.TrimSpace(in.NameES)
	in.NameEN = strings.TrimSpace(in.NameEN)
	if in.NameES == "" || in.NameEN == "" {
		return "name_es and name_en are required"
	}
	if in.Slug == "" {
		in.Slug = slugify(in.NameES)
	}
	return ""
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// POST /api/admin/zones
func (h *ZoneHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in zoneIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.clean(); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		z := &models.ServiceZone{NameES: in.NameES, NameEN: in.NameEN, Slug: in.Slug, Active: in.Active}
		if err := h.repo.Create(r.Context(), z); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create zone")
			return
		}
		h.audit.record(r, "create", "service_zones", z.ID, in)
		utils.JSON(w, http.StatusCreated, z)
	}
}

// PUT /api/admin/zones/{id}
func (h *ZoneHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in zoneIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if msg := in.clean(); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}
		z := &models.ServiceZone{ID: id, NameES: in.NameES, NameEN: in.NameEN, Slug: in.Slug, Active: in.Active}
		if err := h.repo.Update(r.Context(), z); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update zone")
			return
		}
		h.audit.record(r, "update", "service_zones", id, in)
		utils.JSON(w, http.StatusOK, z)
	}
}

// DELETE /api/admin/zones/{id}
func (h *ZoneHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := h.repo.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not delete zone")
			return
		}
		h.audit.record(r, "delete", "service_zones", id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
