package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/service"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

const guestCookie = "guest_id"

// FavoriteHTTP serves the favorites set for both identities: signed-in users
// hit Postgres, guests hit the server-side file store keyed by an httpOnly
// cookie. The first authenticated load with a guest cookie triggers the
// one-shot merge.
type FavoriteHTTP struct {
	svc *service.FavoritesService
}

func NewFavoriteHTTP(svc *service.FavoritesService) *FavoriteHTTP {
	return &FavoriteHTTP{svc: svc}
}

func guestID(r *http.Request) string {
	c, err := r.Cookie(guestCookie)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}
	return c.Value
}

// ensureGuest returns the guest id, minting the cookie on first contact.
func ensureGuest(w http.ResponseWriter, r *http.Request) string {
	if id := guestID(r); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     guestCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

func clearGuestCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     guestCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// GET /api/favorites
func (h *FavoriteHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)

		if uid != "" {
			gid := guestID(r)
			ids, err := h.svc.Sync(r.Context(), uid, gid)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, "could not load favorites")
				return
			}
			if gid != "" {
				clearGuestCookie(w)
			}
			utils.JSON(w, http.StatusOK, map[string]any{"items": idsOrEmpty(ids)})
			return
		}

		gid := ensureGuest(w, r)
		store := h.svc.StoreFor("", gid)
		_ = store.Load(r.Context()) // guest reads cannot fail
		utils.JSON(w, http.StatusOK, map[string]any{"items": idsOrEmpty(store.List())})
	}
}

func idsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// POST /api/favorites/{id}
func (h *FavoriteHTTP) Add() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		gid := ""
		if uid == "" {
			gid = ensureGuest(w, r)
		}
		store := h.svc.StoreFor(uid, gid)
		if err := store.Load(r.Context()); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load favorites")
			return
		}
		if err := store.Add(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save favorite")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"favorited": true, "items": store.List()})
	}
}

// DELETE /api/favorites/{id}
func (h *FavoriteHTTP) Remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		gid := ""
		if uid == "" {
			gid = ensureGuest(w, r)
		}
		store := h.svc.StoreFor(uid, gid)
		if err := store.Load(r.Context()); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load favorites")
			return
		}
		if err := store.Remove(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not remove favorite")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"favorited": false, "items": store.List()})
	}
}

// POST /api/favorites/{id}/toggle
func (h *FavoriteHTTP) Toggle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		gid := ""
		if uid == "" {
			gid = ensureGuest(w, r)
		}
		store := h.svc.StoreFor(uid, gid)
		if err := store.Load(r.Context()); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load favorites")
			return
		}
		on, err := store.Toggle(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not update favorite")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"favorited": on, "items": store.List()})
	}
}

// DELETE /api/favorites
func (h *FavoriteHTTP) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		gid := ""
		if uid == "" {
			gid = ensureGuest(w, r)
		}
		store := h.svc.StoreFor(uid, gid)
		if err := store.Load(r.Context()); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load favorites")
			return
		}
		if err := store.Clear(r.Context()); err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not clear favorites")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": []string{}})
	}
}
