package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

type AgentHTTP struct {
	profiles repository.ProfileRepository
}

func NewAgentHTTP(profiles repository.ProfileRepository) *AgentHTTP {
	return &AgentHTTP{profiles: profiles}
}

// GET /api/agents
// Public directory. Completed agent profiles only, trimmed to public fields.
func (h *AgentHTTP) List() http.HandlerFunc {
	type agentDTO struct {
		UserID      string          `json:"userId"`
		DisplayName string          `json:"displayName"`
		PhotoURL    string          `json:"photoUrl,omitempty"`
		BioES       string          `json:"bioEs,omitempty"`
		BioEN       string          `json:"bioEn,omitempty"`
		Languages   []string        `json:"languages,omitempty"`
		ZoneIDs     []string        `json:"serviceZoneIds,omitempty"`
		Specialty   string          `json:"specialty,omitempty"`
		SocialLinks json.RawMessage `json:"socialLinks,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		agents, err := h.profiles.ListAgents(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load agents")
			return
		}
		out := make([]agentDTO, 0, len(agents))
		for _, a := range agents {
			out = append(out, agentDTO{
				UserID:      a.UserID,
				DisplayName: a.DisplayName,
				PhotoURL:    a.PhotoURL,
				BioES:       a.BioES,
				BioEN:       a.BioEN,
				Languages:   a.Languages,
				ZoneIDs:     a.ServiceZoneIDs,
				Specialty:   a.Specialty,
				SocialLinks: socialJSON(a),
			})
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": out})
	}
}

func socialJSON(p models.Profile) json.RawMessage {
	if len(p.SocialLinks) == 0 || string(p.SocialLinks) == "null" {
		return nil
	}
	return json.RawMessage(p.SocialLinks)
}
