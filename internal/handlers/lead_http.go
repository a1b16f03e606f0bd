package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/service"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/validation"
)

// LeadHTTP covers the public intake endpoints (rate-limited at the router)
// and the staff screens for working the pipeline.
type LeadHTTP struct {
	svc   *service.LeadService
	leads repository.LeadRepository
	audit *Auditor
}

func NewLeadHTTP(svc *service.LeadService, leads repository.LeadRepository, audit *Auditor) *LeadHTTP {
	return &LeadHTTP{svc: svc, leads: leads, audit: audit}
}

// POST /api/public/contact
func (h *LeadHTTP) SubmitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f validation.ContactForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		_, fe, err := h.svc.SubmitContact(r.Context(), &f)
		if fe != nil {
			utils.FieldError(w, fe.Field, fe.Message)
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not submit inquiry")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// POST /api/public/schedule-visit
func (h *LeadHTTP) SubmitVisit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f validation.VisitForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		_, fe, err := h.svc.SubmitVisit(r.Context(), &f)
		if fe != nil {
			utils.FieldError(w, fe.Field, fe.Message)
			return
		}
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not schedule visit")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// GET /api/admin/inquiries?status=&limit=&offset=
func (h *LeadHTTP) ListInquiries() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		items, total, err := h.leads.ListInquiries(r.Context(),
			middleware.EffectiveOrgID(r.Context()), qv.Get("status"),
			utils.QueryInt(qv, "limit", 20), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load inquiries")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// PATCH /api/admin/inquiries/{id}/status
func (h *LeadHTTP) UpdateInquiryStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		updated, err := h.svc.SetInquiryStatus(r.Context(), id, in.Status)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		if updated == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.audit.record(r, "update", "contact_inquiries", id, map[string]string{"status": in.Status})
		utils.JSON(w, http.StatusOK, updated)
	}
}

// GET /api/admin/visits?status=&limit=&offset=
func (h *LeadHTTP) ListVisits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		items, total, err := h.leads.ListVisits(r.Context(),
			middleware.EffectiveOrgID(r.Context()), qv.Get("status"),
			utils.QueryInt(qv, "limit", 20), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not load visits")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// PATCH /api/admin/visits/{id}/status
func (h *LeadHTTP) UpdateVisitStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		updated, err := h.svc.SetVisitStatus(r.Context(), id, in.Status)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}
		if updated == nil {
			utils.Error(w, http.StatusNotFound, "not found")
			return
		}
		h.audit.record(r, "update", "scheduled_visits", id, map[string]string{"status": in.Status})
		utils.JSON(w, http.StatusOK, updated)
	}
}
