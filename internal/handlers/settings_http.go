package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// SettingsHTTP exposes the site_settings key/value table. Values are opaque
// JSON documents; the server only checks they parse.
type SettingsHTTP struct {
	repo  repository.SettingsRepository
	audit *Auditor
}

func NewSettingsHTTP(repo repository.SettingsRepository, audit *Auditor) *SettingsHTTP {
	return &SettingsHTTP{repo: repo, audit: audit}
}

// GET /api/admin/settings
func (h *SettingsHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load settings")
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// GET /api/admin/settings/{key}
func (h *SettingsHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		s, err := h.repo.Get(r.Context(), key)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load setting")
			return
		}
		if s == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, s)
	}
}

// PUT /api/admin/settings/{key}
func (h *SettingsHTTP) Put() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "key")
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil || !json.Valid(body) {
			utils.Error(w, http.StatusBadRequest, "value must be valid json")
			return
		}
		actor, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		if err := h.repo.Put(r.Context(), key, body, actor); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save setting")
			return
		}
		h.audit.record(r, "update", "site_settings", key, json.RawMessage(body))
		utils.JSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
