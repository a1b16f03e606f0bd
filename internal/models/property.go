package models

import "time"

// Property types and operations. Values are kept in Spanish to match the
// public site's canonical vocabulary.
const (
	TypeCasa         = "casa"
	TypeDepartamento = "departamento"
	TypeLocal        = "local"
	TypeOficina      = "oficina"

	OperationVenta = "venta"
	OperationRenta = "renta"

	StatusDisponible = "disponible"
	StatusVendida    = "vendida"
	StatusRentada    = "rentada"
)

type Property struct {
	ID            string          `json:"id"`
	TitleES       string          `json:"titleEs"`
	TitleEN       string          `json:"titleEn"`
	DescriptionES string          `json:"descriptionEs,omitempty"`
	DescriptionEN string          `json:"descriptionEn,omitempty"`
	Type          string          `json:"type"`
	Operation     string          `json:"operation"`
	Price         float64         `json:"price"`
	Status        string          `json:"status"`
	ZoneID        *string         `json:"zoneId"`
	Neighborhood  string          `json:"neighborhood,omitempty"`
	Address       string          `json:"address,omitempty"`
	Lat           *float64        `json:"lat"`
	Lng           *float64        `json:"lng"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Parking       int             `json:"parking"`
	BuiltArea     float64         `json:"builtArea"` // m2
	LotArea       float64         `json:"lotArea"`   // m2
	AgentID       *string         `json:"agentId"`
	OrgID         *string         `json:"organizationId"`
	Featured      bool            `json:"featured"`
	Images        []PropertyImage `json:"images,omitempty"`
	AgentName     string          `json:"agentName,omitempty"` // joined
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PropertyImage is one ordered catalog image. Variants holds optional
// responsive renditions as raw jsonb ({"thumb": url, "md": url, ...}).
type PropertyImage struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	URL        string    `json:"url"`
	Variants   []byte    `json:"-"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}
