package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// PropertyHTTP serves the public catalog: search/filter listings and the
// per-property detail view.
type PropertyHTTP struct {
	repo repository.PropertyRepository
}

func NewPropertyHTTP(r repository.PropertyRepository) *PropertyHTTP {
	return &PropertyHTTP{repo: r}
}

// GET /api/properties?q=&type=&operation=&status=&zone=&minPrice=&maxPrice=&bedrooms=&bathrooms=&featured=&sort=&order=&limit=&offset=
func (h *PropertyHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()

		f := repository.PropertyFilter{
			Q:         strings.TrimSpace(qv.Get("q")),
			Type:      qv.Get("type"),
			Operation: qv.Get("operation"),
			Status:    qv.Get("status"),
			ZoneID:    qv.Get("zone"),
			MinPrice:  utils.QueryFloat(qv, "minPrice"),
			MaxPrice:  utils.QueryFloat(qv, "maxPrice"),
			Bedrooms:  utils.QueryInt(qv, "bedrooms", 0),
			Bathrooms: utils.QueryInt(qv, "bathrooms", 0),
			Limit:     utils.QueryInt(qv, "limit", 12),
			Offset:    utils.QueryInt(qv, "offset", 0),
			Sort:      qv.Get("sort"),
			Order:     qv.Get("order"),
		}
		if f.Status == "" {
			// the public catalog only shows what can still be bought/rented
			f.Status = models.StatusDisponible
		}
		if s := qv.Get("featured"); s == "true" {
			t := true
			f.Featured = &t
		}

		items, total, err := h.repo.List(r.Context(), f)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load properties")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/properties/{id}
func (h *PropertyHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := uuid.Parse(id); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid id")
			return
		}
		p, err := h.repo.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load property")
			return
		}
		if p == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}
