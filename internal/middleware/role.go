package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/roles"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

const ctxResolution ctxKey = "resolution"

// WithRole resolves the current user's effective role fresh on every request.
// Any fetch failure resolves to least privilege; authorization never falls
// open on a database error.
func WithRole(log zerolog.Logger, profiles repository.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := utils.GetString(r.Context(), CtxUserID)
			if !ok || uid == "" {
				next.ServeHTTP(w, r)
				return
			}

			res := roles.Resolve(nil, nil)
			p, err := profiles.Get(r.Context(), uid)
			if err != nil {
				log.Warn().Err(err).Str("uid", uid).Msg("profile fetch failed; resolving fail-closed")
			} else if p != nil {
				assignments, aerr := profiles.Assignments(r.Context(), uid)
				if aerr != nil {
					log.Warn().Err(aerr).Str("uid", uid).Msg("assignments fetch failed; resolving fail-closed")
				} else {
					res = roles.Resolve(p, assignments)
				}
			}

			ctx := context.WithValue(r.Context(), ctxResolution, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Resolution returns the effective role view, least-privileged when absent.
func Resolution(ctx context.Context) roles.Resolution {
	if res, ok := ctx.Value(ctxResolution).(roles.Resolution); ok {
		return res
	}
	return roles.Resolve(nil, nil)
}
