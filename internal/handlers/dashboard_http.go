package handlers

import (
	"net/http"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// DashboardHTTP serves the admin landing page counters. Everything respects
// the caller's org scope so agency admins never see other agencies' numbers.
type DashboardHTTP struct {
	properties repository.PropertyRepository
	leads      repository.LeadRepository
	audit      repository.AuditRepository
}

func NewDashboardHTTP(properties repository.PropertyRepository, leads repository.LeadRepository, audit repository.AuditRepository) *DashboardHTTP {
	return &DashboardHTTP{properties: properties, leads: leads, audit: audit}
}

// GET /api/admin/dashboard
func (h *DashboardHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		orgID := middleware.EffectiveOrgID(ctx)

		available, err := h.properties.CountByStatus(ctx, orgID, models.StatusDisponible)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load dashboard")
			return
		}
		sold, err := h.properties.CountByStatus(ctx, orgID, models.StatusVendida)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load dashboard")
			return
		}
		rented, err := h.properties.CountByStatus(ctx, orgID, models.StatusRentada)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load dashboard")
			return
		}
		newInquiries, err := h.leads.CountInquiries(ctx, orgID, models.InquiryNew)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load dashboard")
			return
		}
		pendingVisits, err := h.leads.CountVisits(ctx, orgID, models.VisitPending)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load dashboard")
			return
		}

		utils.JSON(w, http.StatusOK, map[string]any{
			"properties": map[string]int{
				"disponible": available,
				"vendida":    sold,
				"rentada":    rented,
			},
			"newInquiries":  newInquiries,
			"pendingVisits": pendingVisits,
		})
	}
}

// GET /api/admin/audit
// Recent audit trail, newest first.
func (h *DashboardHTTP) AuditLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		items, total, err := h.audit.List(r.Context(),
			qv.Get("table"),
			utils.QueryInt(qv, "limit", 50),
			utils.QueryInt(qv, "offset", 0),
		)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load audit log")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}
