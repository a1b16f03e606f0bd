package repository

import (
	"context"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, verifyToken string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetVerifyToken(ctx context.Context, id, token string) error
	VerifyByToken(ctx context.Context, token string) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) (*models.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, userID, displayName, role string) error
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Assignments(ctx context.Context, userID string) ([]models.RoleAssignment, error)
	Update(ctx context.Context, p *models.Profile) (*models.Profile, error)
	SetRoleOrg(ctx context.Context, userID, role string, orgID *string) (*models.Profile, error)
	List(ctx context.Context, q, role string, orgID *string, limit, offset int) ([]models.Profile, int, error)
	ListAgents(ctx context.Context) ([]models.Profile, error)
	AddAssignment(ctx context.Context, userID, role string, orgID *string) (*models.RoleAssignment, error)
	RemoveAssignment(ctx context.Context, id string) error
}

type PropertyRepository interface {
	List(ctx context.Context, f PropertyFilter) ([]models.Property, int, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, p *models.Property) error
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id string) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	AddImage(ctx context.Context, img *models.PropertyImage) error
	RemoveImage(ctx context.Context, imageID string) (string /*url*/, error)
	ReorderImages(ctx context.Context, propertyID string, imageIDs []string) error
	CountByStatus(ctx context.Context, orgID *string, status string) (int, error)
}

type FavoriteRepository interface {
	ListIDs(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, propertyID string) error
	AddMany(ctx context.Context, userID string, propertyIDs []string) error
	Remove(ctx context.Context, userID, propertyID string) error
	Clear(ctx context.Context, userID string) error
}

type LeadRepository interface {
	CreateInquiry(ctx context.Context, in *models.ContactInquiry) error
	ListInquiries(ctx context.Context, orgID *string, status string, limit, offset int) ([]models.ContactInquiry, int, error)
	UpdateInquiryStatus(ctx context.Context, id, status string) (*models.ContactInquiry, error)
	CreateVisit(ctx context.Context, v *models.ScheduledVisit) error
	ListVisits(ctx context.Context, orgID *string, status string, limit, offset int) ([]models.ScheduledVisit, int, error)
	UpdateVisitStatus(ctx context.Context, id, status string) (*models.ScheduledVisit, error)
	CountInquiries(ctx context.Context, orgID *string, status string) (int, error)
	CountVisits(ctx context.Context, orgID *string, status string) (int, error)
}

type AuditRepository interface {
	Append(ctx context.Context, e *models.AuditLogEntry) error
	List(ctx context.Context, table string, limit, offset int) ([]models.AuditLogEntry, int, error)
}

type OrganizationRepository interface {
	List(ctx context.Context) ([]models.Organization, error)
	Get(ctx context.Context, id string) (*models.Organization, error)
	Create(ctx context.Context, o *models.Organization) error
	Update(ctx context.Context, o *models.Organization) error
	Delete(ctx context.Context, id string) error
}

type ZoneRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.ServiceZone, error)
	Create(ctx context.Context, z *models.ServiceZone) error
	Update(ctx context.Context, z *models.ServiceZone) error
	Delete(ctx context.Context, id string) error
}

type SettingsRepository interface {
	List(ctx context.Context) ([]models.SiteSetting, error)
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	Put(ctx context.Context, key string, value []byte, updatedBy string) error
}
