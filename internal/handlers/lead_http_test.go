package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/service"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

type fakeLeadRepo struct {
	inquiries []*models.ContactInquiry
	visits    []*models.ScheduledVisit
}

func (f *fakeLeadRepo) CreateInquiry(_ context.Context, in *models.ContactInquiry) error {
	in.ID = fmt.Sprintf("inq-%d", len(f.inquiries)+1)
	in.Status = models.InquiryNew
	f.inquiries = append(f.inquiries, in)
	return nil
}

func (f *fakeLeadRepo) ListInquiries(_ context.Context, _ *string, _ string, _, _ int) ([]models.ContactInquiry, int, error) {
	return nil, 0, nil
}

func (f *fakeLeadRepo) UpdateInquiryStatus(_ context.Context, id, status string) (*models.ContactInquiry, error) {
	for _, in := range f.inquiries {
		if in.ID == id {
			in.Status = status
			return in, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) CreateVisit(_ context.Context, v *models.ScheduledVisit) error {
	v.ID = fmt.Sprintf("vis-%d", len(f.visits)+1)
	v.Status = models.VisitPending
	f.visits = append(f.visits, v)
	return nil
}

func (f *fakeLeadRepo) ListVisits(_ context.Context, _ *string, _ string, _, _ int) ([]models.ScheduledVisit, int, error) {
	return nil, 0, nil
}

func (f *fakeLeadRepo) UpdateVisitStatus(_ context.Context, id, status string) (*models.ScheduledVisit, error) {
	for _, v := range f.visits {
		if v.ID == id {
			v.Status = status
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeLeadRepo) CountInquiries(_ context.Context, _ *string, _ string) (int, error) {
	return len(f.inquiries), nil
}

func (f *fakeLeadRepo) CountVisits(_ context.Context, _ *string, _ string) (int, error) {
	return len(f.visits), nil
}

// fakePropertyLookup only answers Get; the intake path never touches the rest.
type fakePropertyLookup struct {
	repository.PropertyRepository
	byID map[string]*models.Property
}

func (f *fakePropertyLookup) Get(_ context.Context, id string) (*models.Property, error) {
	return f.byID[id], nil
}

func newLeadRouter(leads *fakeLeadRepo, props *fakePropertyLookup) http.Handler {
	log := zerolog.Nop()
	svc := service.NewLeadService(leads, props, discardNotifier{}, nil, log, "")
	h := NewLeadHTTP(svc, leads, NewAuditor(noopAudit{}, log))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(5, time.Hour,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				utils.JSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "too many requests, try again later",
					"code":  "rate_limited",
				})
			}),
		))
		r.Post("/contact", h.SubmitContact())
		r.Post("/schedule-visit", h.SubmitVisit())
	})
	return r
}

type discardNotifier struct{}

func (discardNotifier) Notify(_, _, _ string) error { return nil }

type noopAudit struct{}

func (noopAudit) Append(_ context.Context, _ *models.AuditLogEntry) error { return nil }
func (noopAudit) List(_ context.Context, _ string, _, _ int) ([]models.AuditLogEntry, int, error) {
	return nil, 0, nil
}

func postJSON(h http.Handler, path, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSubmitContactValid(t *testing.T) {
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	body := `{"name":"Ana López","email":"ana@example.com","message":"Me interesa la casa en Reforma, ¿sigue disponible?"}`
	rec := postJSON(h, "/contact", body, "10.0.0.1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	require.Len(t, leads.inquiries, 1)
	assert.Equal(t, "Ana López", leads.inquiries[0].Name)
	assert.Equal(t, models.InquiryNew, leads.inquiries[0].Status)
}

func TestSubmitContactShortMessage(t *testing.T) {
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	body := `{"name":"Ana","email":"ana@example.com","message":"hola"}`
	rec := postJSON(h, "/contact", body, "10.0.0.2")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"message"`)
	assert.Empty(t, leads.inquiries)
}

func TestSubmitContactStripsHTML(t *testing.T) {
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	body := `{"name":"Ana","email":"ana@example.com","message":"Quiero <b>más información</b> de la propiedad"}`
	rec := postJSON(h, "/contact", body, "10.0.0.3")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, leads.inquiries, 1)
	assert.Equal(t, "Quiero más información de la propiedad", leads.inquiries[0].Message)
}

func TestSubmitContactScopesToPropertyOrg(t *testing.T) {
	org := "7b1f8f1a-9c2d-4e3f-8a5b-1c2d3e4f5a6b"
	propID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	props := &fakePropertyLookup{byID: map[string]*models.Property{
		propID: {ID: propID, OrgID: &org},
	}}
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, props)

	body := fmt.Sprintf(`{"name":"Ana","email":"ana@example.com","message":"Quiero ver esta propiedad pronto","property_id":"%s"}`, propID)
	rec := postJSON(h, "/contact", body, "10.0.0.4")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, leads.inquiries, 1)
	require.NotNil(t, leads.inquiries[0].OrgID)
	assert.Equal(t, org, *leads.inquiries[0].OrgID)
}

func TestSubmitContactRateLimited(t *testing.T) {
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	body := `{"name":"Ana","email":"ana@example.com","message":"Me interesa, favor de contactarme"}`
	for i := 0; i < 5; i++ {
		rec := postJSON(h, "/contact", body, "10.0.0.5")
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := postJSON(h, "/contact", body, "10.0.0.5")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"rate_limited"`)
	assert.Len(t, leads.inquiries, 5)

	// another client is unaffected
	rec = postJSON(h, "/contact", body, "10.0.0.6")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitVisit(t *testing.T) {
	propID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	body := fmt.Sprintf(`{"name":"Ana","email":"ana@example.com","property_id":"%s","visit_date":"%s","visit_time":"16:30"}`, propID, date)
	rec := postJSON(h, "/schedule-visit", body, "10.0.1.1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, leads.visits, 1)
	assert.Equal(t, 16, leads.visits[0].VisitDate.Hour())
	assert.Equal(t, models.VisitPending, leads.visits[0].Status)
}

func TestSubmitVisitPastDate(t *testing.T) {
	propID := "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	leads := &fakeLeadRepo{}
	h := newLeadRouter(leads, &fakePropertyLookup{})

	body := fmt.Sprintf(`{"name":"Ana","email":"ana@example.com","property_id":"%s","visit_date":"2020-01-01"}`, propID)
	rec := postJSON(h, "/schedule-visit", body, "10.0.1.2")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"visit_date"`)
	assert.Empty(t, leads.visits)
}
