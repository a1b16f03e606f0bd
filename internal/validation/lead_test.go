package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactFormShortMessage(t *testing.T) {
	f := ContactForm{Name: "Ana", Email: "ana@example.com", Message: "hola"}
	fe := f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "message", fe.Field)
}

func TestContactFormValid(t *testing.T) {
	f := ContactForm{
		Name:    "Ana López",
		Email:   "ana@example.com",
		Phone:   "+52 951 123 4567",
		Message: "Me interesa esta propiedad, ¿sigue disponible?",
	}
	assert.Nil(t, f.Validate())
}

func TestContactFormBadEmailAndPhone(t *testing.T) {
	f := ContactForm{Name: "Ana", Email: "not-an-email", Message: "mensaje suficientemente largo"}
	fe := f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "email", fe.Field)

	f = ContactForm{Name: "Ana", Email: "ana@example.com", Phone: "call me", Message: "mensaje suficientemente largo"}
	fe = f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "phone", fe.Field)
}

func TestVisitFormParsesDateAndTime(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f := VisitForm{
		Name:       "Ana",
		Email:      "ana@example.com",
		PropertyID: "0b54d7a1-2c3e-4f58-9a6b-1d2e3f4a5b6c",
		VisitDate:  "2026-08-15",
		VisitTime:  "10:30",
	}
	when, fe := f.Validate(now)
	require.Nil(t, fe)
	assert.Equal(t, time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC), when)
}

func TestVisitFormRejectsPastAndBadDates(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f := VisitForm{
		Name: "Ana", Email: "ana@example.com",
		PropertyID: "0b54d7a1-2c3e-4f58-9a6b-1d2e3f4a5b6c",
		VisitDate:  "2026-07-01",
	}
	_, fe := f.Validate(now)
	require.NotNil(t, fe)
	assert.Equal(t, "visit_date", fe.Field)

	f.VisitDate = "15/08/2026"
	_, fe = f.Validate(now)
	require.NotNil(t, fe)
	assert.Equal(t, "visit_date", fe.Field)
}

func TestVisitFormRequiresProperty(t *testing.T) {
	now := time.Now()
	f := VisitForm{Name: "Ana", Email: "ana@example.com", VisitDate: "2030-01-01"}
	_, fe := f.Validate(now)
	require.NotNil(t, fe)
	assert.Equal(t, "property_id", fe.Field)
}
