package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/mq"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/notify"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/validation"
)

// LeadService handles public contact/visit submissions and staff status
// updates. Submissions are validated and sanitized before the insert; the
// email notification and the event publish are best-effort.
type LeadService struct {
	leads      repository.LeadRepository
	properties repository.PropertyRepository
	notifier   notify.Notifier
	events     *mq.Publisher
	log        zerolog.Logger
	mailTo     string

	strip *bluemonday.Policy
}

func NewLeadService(leads repository.LeadRepository, properties repository.PropertyRepository,
	n notify.Notifier, events *mq.Publisher, log zerolog.Logger, mailTo string) *LeadService {
	return &LeadService{
		leads: leads, properties: properties, notifier: n, events: events,
		log: log, mailTo: mailTo,
		strip: bluemonday.StrictPolicy(),
	}
}

// sanitize strips all HTML and decodes entities so stored text is plain.
func (s *LeadService) sanitize(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.strip.Sanitize(in)))
}

// propertyOrg resolves the owning organization for scoping; a dangling or
// absent property id leaves the lead unscoped rather than rejecting it.
func (s *LeadService) propertyOrg(ctx context.Context, propertyID string) *string {
	if propertyID == "" {
		return nil
	}
	p, err := s.properties.Get(ctx, propertyID)
	if err != nil || p == nil {
		return nil
	}
	return p.OrgID
}

func (s *LeadService) SubmitContact(ctx context.Context, f *validation.ContactForm) (*models.ContactInquiry, *validation.FieldError, error) {
	if fe := f.Validate(); fe != nil {
		return nil, fe, nil
	}

	in := &models.ContactInquiry{
		Name:    s.sanitize(f.Name),
		Email:   f.Email,
		Phone:   s.sanitize(f.Phone),
		Message: s.sanitize(f.Message),
	}
	if f.PropertyID != "" {
		in.PropertyID = &f.PropertyID
	}
	in.OrgID = s.propertyOrg(ctx, f.PropertyID)

	if err := s.leads.CreateInquiry(ctx, in); err != nil {
		return nil, nil, err
	}

	s.afterLead(ctx, "lead.inquiry.created", in.ID,
		"Nueva consulta / New inquiry",
		fmt.Sprintf("%s <%s>\n\n%s", in.Name, in.Email, in.Message))
	return in, nil, nil
}

func (s *LeadService) SubmitVisit(ctx context.Context, f *validation.VisitForm) (*models.ScheduledVisit, *validation.FieldError, error) {
	when, fe := f.Validate(time.Now())
	if fe != nil {
		return nil, fe, nil
	}

	v := &models.ScheduledVisit{
		Name:       s.sanitize(f.Name),
		Email:      f.Email,
		Phone:      s.sanitize(f.Phone),
		Message:    s.sanitize(f.Message),
		PropertyID: f.PropertyID,
		VisitDate:  when,
	}
	v.OrgID = s.propertyOrg(ctx, f.PropertyID)

	if err := s.leads.CreateVisit(ctx, v); err != nil {
		return nil, nil, err
	}

	s.afterLead(ctx, "lead.visit.created", v.ID,
		"Nueva visita agendada / New visit scheduled",
		fmt.Sprintf("%s <%s>\n%s", v.Name, v.Email, when.Format("2006-01-02 15:04")))
	return v, nil, nil
}

func (s *LeadService) afterLead(ctx context.Context, event, id, subject, body string) {
	if s.mailTo != "" {
		if err := s.notifier.Notify(s.mailTo, subject, body); err != nil {
			s.log.Warn().Err(err).Str("lead", id).Msg("lead mail failed")
		}
	}
	if err := s.events.PublishJSON(ctx, event, map[string]string{"id": id}); err != nil {
		s.log.Warn().Err(err).Str("lead", id).Msg("lead event publish failed")
	}
}

func (s *LeadService) SetInquiryStatus(ctx context.Context, id, status string) (*models.ContactInquiry, error) {
	if !models.ValidInquiryStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.leads.UpdateInquiryStatus(ctx, id, status)
}

func (s *LeadService) SetVisitStatus(ctx context.Context, id, status string) (*models.ScheduledVisit, error) {
	if !models.ValidVisitStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.leads.UpdateVisitStatus(ctx, id, status)
}
