package validation

import (
	"regexp"
	"strings"
	"time"
)

// loose on purpose: international formats with spaces, dashes and parens
var phoneRe = regexp.MustCompile(`^[0-9+()\-\s.]{7,20}$`)

type ContactForm struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Message    string `json:"message" validate:"required,min=10,max=2000"`
	PropertyID string `json:"property_id" validate:"omitempty,uuid4"`
}

func (f *ContactForm) Validate() *FieldError {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)

	if fe := firstError(validate.Struct(f)); fe != nil {
		return fe
	}
	if f.Phone != "" && !phoneRe.MatchString(f.Phone) {
		return &FieldError{Field: "phone", Message: "must be a valid phone number"}
	}
	return nil
}

type VisitForm struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Message    string `json:"message" validate:"omitempty,max=2000"`
	PropertyID string `json:"property_id" validate:"required,uuid4"`
	VisitDate  string `json:"visit_date" validate:"required"` // YYYY-MM-DD
	VisitTime  string `json:"visit_time"`                     // HH:MM, optional
}

// Validate checks the form and returns the parsed visit timestamp.
func (f *VisitForm) Validate(now time.Time) (time.Time, *FieldError) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Message = strings.TrimSpace(f.Message)

	if fe := firstError(validate.Struct(f)); fe != nil {
		return time.Time{}, fe
	}
	if f.Phone != "" && !phoneRe.MatchString(f.Phone) {
		return time.Time{}, &FieldError{Field: "phone", Message: "must be a valid phone number"}
	}

	when, err := time.Parse("2006-01-02", f.VisitDate)
	if err != nil {
		return time.Time{}, &FieldError{Field: "visit_date", Message: "must be a date (YYYY-MM-DD)"}
	}
	if f.VisitTime != "" {
		t, err := time.Parse("15:04", f.VisitTime)
		if err != nil {
			return time.Time{}, &FieldError{Field: "visit_time", Message: "must be a time (HH:MM)"}
		}
		when = when.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	if when.Before(now.Truncate(24 * time.Hour)) {
		return time.Time{}, &FieldError{Field: "visit_date", Message: "must not be in the past"}
	}
	return when, nil
}
