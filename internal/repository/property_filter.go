package repository

type PropertyFilter struct {
	Q         string // matches title/description in both languages
	Type      string
	Operation string
	Status    string
	ZoneID    string
	AgentID   string
	OrgID     *string // nil means unscoped (superadmin "all organizations")
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  int // minimum
	Bathrooms int // minimum
	Featured  *bool
	Limit     int
	Offset    int
	Sort      string // price, created_at, updated_at
	Order     string // asc|desc
}
