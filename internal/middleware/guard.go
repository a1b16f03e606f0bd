package middleware

import (
	"net/http"
	"net/url"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// The admin guard chain. Middlewares run in a strict order on /api/admin:
// WithAuth → RequireAuth → WithRole → RequireStaff → RequireCompleteProfile →
// OrgScope. No step is skipped; each terminal state is distinct.

// RequireAuth rejects anonymous requests with a sign-in URL that carries the
// attempted path so the client can return after login.
func RequireAuth(siteURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := utils.GetString(r.Context(), CtxUserID)
			if !ok || uid == "" {
				utils.JSON(w, http.StatusUnauthorized, map[string]string{
					"error":     "authentication required",
					"signInUrl": siteURL + "/auth/sign-in?next=" + url.QueryEscape(r.URL.RequestURI()),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStaff blocks non-staff with an explicit access-denied payload that
// echoes the email and resolved role, so support can tell users what account
// they are on. Not a silent redirect.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := Resolution(r.Context())
		if !res.IsStaff {
			email, _ := utils.GetString(r.Context(), CtxEmail)
			utils.JSON(w, http.StatusForbidden, map[string]string{
				"error": "access denied",
				"email": email,
				"role":  res.Role,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits admins and, hierarchically, superadmins.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Resolution(r.Context()).IsAdmin {
			utils.Error(w, http.StatusForbidden, "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperadmin gates cross-organization surfaces.
func RequireSuperadmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !Resolution(r.Context()).IsSuperadmin {
			utils.Error(w, http.StatusForbidden, "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCompleteProfile holds agents at onboarding until their profile is
// finished. Admins and superadmins pass regardless.
func RequireCompleteProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := Resolution(r.Context())
		if res.IsAgent && !res.ProfileComplete {
			utils.JSON(w, http.StatusForbidden, map[string]string{
				"error":      "profile incomplete",
				"onboarding": "/admin/onboarding",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
