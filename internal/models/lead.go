package models

import "time"

// Inquiry statuses: new → contacted → resolved | archived.
const (
	InquiryNew       = "new"
	InquiryContacted = "contacted"
	InquiryResolved  = "resolved"
	InquiryArchived  = "archived"
)

// Visit statuses: pending → confirmed → completed | cancelled.
const (
	VisitPending   = "pending"
	VisitConfirmed = "confirmed"
	VisitCompleted = "completed"
	VisitCancelled = "cancelled"
)

type ContactInquiry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message"`
	PropertyID *string   `json:"propertyId"`
	OrgID      *string   `json:"organizationId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type ScheduledVisit struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message,omitempty"`
	PropertyID string    `json:"propertyId"`
	OrgID      *string   `json:"organizationId"`
	VisitDate  time.Time `json:"visitDate"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ValidInquiryStatus(s string) bool {
	switch s {
	case InquiryNew, InquiryContacted, InquiryResolved, InquiryArchived:
		return true
	}
	return false
}

func ValidVisitStatus(s string) bool {
	switch s {
	case VisitPending, VisitConfirmed, VisitCompleted, VisitCancelled:
		return true
	}
	return false
}
