package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/roles"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// ProfileHTTP lets a signed-in user read and edit their own profile. Agents
// use this to finish onboarding; role and organization are never writable
// here.
type ProfileHTTP struct {
	profiles repository.ProfileRepository
}

func NewProfileHTTP(profiles repository.ProfileRepository) *ProfileHTTP {
	return &ProfileHTTP{profiles: profiles}
}

// GET /api/me/profile
func (h *ProfileHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		p, err := h.profiles.Get(r.Context(), userID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load profile")
			return
		}
		if p == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// PUT /api/me/profile
func (h *ProfileHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		var in struct {
			DisplayName    string          `json:"displayName"`
			Phone          string          `json:"phone"`
			PhotoURL       string          `json:"photoUrl"`
			BioES          string          `json:"bioEs"`
			BioEN          string          `json:"bioEn"`
			Languages      []string        `json:"languages"`
			ServiceZoneIDs []string        `json:"serviceZoneIds"`
			Specialty      string          `json:"specialty"`
			SocialLinks    json.RawMessage `json:"socialLinks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.DisplayName = strings.TrimSpace(in.DisplayName)
		if in.DisplayName == "" {
			utils.FieldError(w, "displayName", "is required")
			return
		}

		existing, err := h.profiles.Get(r.Context(), userID)
		if err != nil || existing == nil {
			utils.Error(w, http.StatusInternalServerError, "could not load profile")
			return
		}

		p := &models.Profile{
			UserID:         userID,
			DisplayName:    in.DisplayName,
			Phone:          strings.TrimSpace(in.Phone),
			PhotoURL:       strings.TrimSpace(in.PhotoURL),
			BioES:          strings.TrimSpace(in.BioES),
			BioEN:          strings.TrimSpace(in.BioEN),
			Languages:      in.Languages,
			ServiceZoneIDs: in.ServiceZoneIDs,
			Specialty:      strings.TrimSpace(in.Specialty),
			SocialLinks:    in.SocialLinks,
		}
		// agent onboarding finishes once the public-card fields exist
		p.IsComplete = existing.Role != roles.RoleAgent ||
			(p.Phone != "" && p.PhotoURL != "" && p.BioES != "" && len(p.ServiceZoneIDs) > 0)

		updated, err := h.profiles.Update(r.Context(), p)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save profile")
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}
