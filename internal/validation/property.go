package validation

import (
	"strconv"
	"strings"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
)

// PropertyForm is the admin property create/edit schema. Lat/Lng arrive as
// strings (form inputs); bounds are checked here because storage does not
// guarantee them.
type PropertyForm struct {
	TitleES       string  `json:"title_es" validate:"required,max=200"`
	TitleEN       string  `json:"title_en" validate:"required,max=200"`
	DescriptionES string  `json:"description_es" validate:"max=10000"`
	DescriptionEN string  `json:"description_en" validate:"max=10000"`
	Type          string  `json:"type" validate:"required,oneof=casa departamento local oficina"`
	Operation     string  `json:"operation" validate:"required,oneof=venta renta"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=disponible vendida rentada"`
	ZoneID        string  `json:"zone_id" validate:"omitempty,uuid4"`
	Neighborhood  string  `json:"neighborhood" validate:"max=150"`
	Address       string  `json:"address" validate:"max=300"`
	Lat           string  `json:"lat"`
	Lng           string  `json:"lng"`
	Bedrooms      int     `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms     int     `json:"bathrooms" validate:"gte=0,lte=50"`
	Parking       int     `json:"parking" validate:"gte=0,lte=50"`
	BuiltArea     float64 `json:"built_area" validate:"gte=0"`
	LotArea       float64 `json:"lot_area" validate:"gte=0"`
	AgentID       string  `json:"agent_id" validate:"omitempty,uuid4"`
	Featured      bool    `json:"featured"`
}

// Validate checks the schema and returns the parsed coordinates (nil when the
// inputs were left empty).
func (f *PropertyForm) Validate() (lat, lng *float64, fe *FieldError) {
	f.TitleES = strings.TrimSpace(f.TitleES)
	f.TitleEN = strings.TrimSpace(f.TitleEN)

	if fe := firstError(validate.Struct(f)); fe != nil {
		return nil, nil, fe
	}

	lat, fe = parseCoord(f.Lat, "lat", 90)
	if fe != nil {
		return nil, nil, fe
	}
	lng, fe = parseCoord(f.Lng, "lng", 180)
	if fe != nil {
		return nil, nil, fe
	}
	// a lone coordinate can't be placed on the map
	if (lat == nil) != (lng == nil) {
		return nil, nil, &FieldError{Field: "lat", Message: "lat and lng must be set together"}
	}
	return lat, lng, nil
}

func parseCoord(s, field string, bound float64) (*float64, *FieldError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, &FieldError{Field: field, Message: "must be a number"}
	}
	if v < -bound || v > bound {
		return nil, &FieldError{Field: field, Message: "is out of range"}
	}
	return &v, nil
}

// ToModel builds the property row. Call only after Validate.
func (f *PropertyForm) ToModel(lat, lng *float64, orgID *string) *models.Property {
	status := f.Status
	if status == "" {
		status = models.StatusDisponible
	}
	p := &models.Property{
		TitleES:       f.TitleES,
		TitleEN:       f.TitleEN,
		DescriptionES: strings.TrimSpace(f.DescriptionES),
		DescriptionEN: strings.TrimSpace(f.DescriptionEN),
		Type:          f.Type,
		Operation:     f.Operation,
		Price:         f.Price,
		Status:        status,
		Neighborhood:  strings.TrimSpace(f.Neighborhood),
		Address:       strings.TrimSpace(f.Address),
		Lat:           lat,
		Lng:           lng,
		Bedrooms:      f.Bedrooms,
		Bathrooms:     f.Bathrooms,
		Parking:       f.Parking,
		BuiltArea:     f.BuiltArea,
		LotArea:       f.LotArea,
		OrgID:         orgID,
		Featured:      f.Featured,
	}
	if f.ZoneID != "" {
		p.ZoneID = &f.ZoneID
	}
	if f.AgentID != "" {
		p.AgentID = &f.AgentID
	}
	return p
}
