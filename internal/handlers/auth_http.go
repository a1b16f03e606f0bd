package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/roles"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/service"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

type AuthHTTP struct {
	svc      *service.AuthService
	users    repository.UserRepository
	profiles repository.ProfileRepository
	log      zerolog.Logger
}

func NewAuthHTTP(s *service.AuthService, users repository.UserRepository,
	profiles repository.ProfileRepository, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: s, users: users, profiles: profiles, log: log}
}

func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
			Password    string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), in.Email, in.DisplayName, in.Password)
		if err != nil {
			// normalized: a duplicate email reads the same as any bad input
			utils.Error(w, http.StatusBadRequest, service.MapAuthError(h.log, err))
			return
		}
		utils.JSON(w, http.StatusCreated, u)
	}
}

func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, service.MapAuthError(h.log, err))
			return
		}

		// Issue httpOnly session cookie
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			// Set true behind HTTPS in prod
			Secure:  false,
			Expires: time.Now().Add(24 * time.Hour),
		})

		p, err := h.profiles.Get(r.Context(), u.ID)
		if err != nil {
			p = nil // login still succeeds, client refetches via /me
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"id":       u.ID,
			"email":    u.Email,
			"verified": u.Verified,
			"profile":  p,
		})
	}
}

func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// Me returns the account, profile and resolved role flags. The isAdmin flag
// here is advisory (it only toggles client affordances); every admin route
// re-verifies server-side.
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.GetString(r.Context(), middleware.CtxUserID)
		if !ok || uid == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil || u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}

		p, err := h.profiles.Get(r.Context(), uid)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "profile unavailable")
			return
		}
		assignments, err := h.profiles.Assignments(r.Context(), uid)
		if err != nil {
			assignments = nil // resolve fail-closed below
		}
		res := roles.Resolve(p, assignments)

		utils.JSON(w, http.StatusOK, map[string]any{
			"id":       u.ID,
			"email":    u.Email,
			"verified": u.Verified,
			"profile":  p,
			"role":     res.Role,
			"isAdmin":  res.IsAdmin,
			"isStaff":  res.IsStaff,
		})
	}
}

func (h *AuthHTTP) ResendVerification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := h.svc.ResendVerification(r.Context(), in.Email); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not resend verification")
			return
		}
		// same answer whether or not the account exists
		utils.JSON(w, http.StatusOK, map[string]bool{"sent": true})
	}
}

func (h *AuthHTTP) Verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Verify(r.Context(), in.Token)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, service.MapAuthError(h.log, err))
			return
		}
		if u == nil {
			utils.Error(w, http.StatusBadRequest, "invalid or expired token")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]bool{"verified": true})
	}
}
