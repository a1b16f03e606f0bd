// Package validation holds the form schemas for public lead submissions and
// the admin property form. All checks run before any database write so bad
// input never costs a round trip.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// firstError folds validator output into a single field-level error, which is
// how responses present validation failures.
func firstError(err error) *FieldError {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return &FieldError{Field: fieldName(fe), Message: message(fe)}
	}
	return &FieldError{Field: "", Message: "invalid input"}
}

func fieldName(fe validator.FieldError) string {
	if n, ok := jsonNames[fe.StructField()]; ok {
		return n
	}
	return fe.StructField()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is too short (min " + fe.Param() + ")"
	case "max":
		return "is too long (max " + fe.Param() + ")"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid4", "uuid":
		return "must be a valid id"
	case "gt", "gte":
		return "is out of range"
	case "e164phone":
		return "must be a valid phone number"
	default:
		return "is invalid"
	}
}

// jsonNames maps struct fields to wire names for the forms in this package.
var jsonNames = map[string]string{
	"Name":          "name",
	"Email":         "email",
	"Phone":         "phone",
	"Message":       "message",
	"PropertyID":    "property_id",
	"VisitDate":     "visit_date",
	"TitleES":       "title_es",
	"TitleEN":       "title_en",
	"DescriptionES": "description_es",
	"DescriptionEN": "description_en",
	"Type":          "type",
	"Operation":     "operation",
	"Price":         "price",
	"Status":        "status",
	"ZoneID":        "zone_id",
	"Lat":           "lat",
	"Lng":           "lng",
	"Bedrooms":      "bedrooms",
	"Bathrooms":     "bathrooms",
	"Parking":       "parking",
	"BuiltArea":     "built_area",
	"LotArea":       "lot_area",
	"AgentID":       "agent_id",
}
