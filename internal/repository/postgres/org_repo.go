package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type OrgRepo struct{ db *pgxpool.Pool }

func NewOrgRepo(db *pgxpool.Pool) repository.OrganizationRepository { return &OrgRepo{db: db} }

const orgCols = `id, name, slug, contact_email, COALESCE(phone, ''), COALESCE(domain, ''), active, created_at, updated_at`

func scanOrg(row pgx.Row) (*models.Organization, error) {
	var o models.Organization
	err := row.Scan(&o.ID, &o.Name, &o.Slug, &o.ContactEmail, &o.Phone, &o.Domain,
		&o.Active, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrgRepo) List(ctx context.Context) ([]models.Organization, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orgCols+` FROM organizations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Organization
	for rows.Next() {
		o, err := scanOrg(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *OrgRepo) Get(ctx context.Context, id string) (*models.Organization, error) {
	o, err := scanOrg(r.db.QueryRow(ctx, `SELECT `+orgCols+` FROM organizations WHERE id=$1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OrgRepo) Create(ctx context.Context, o *models.Organization) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO organizations (name, slug, contact_email, phone, domain, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		o.Name, o.Slug, o.ContactEmail, o.Phone, o.Domain, o.Active).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

func (r *OrgRepo) Update(ctx context.Context, o *models.Organization) error {
	_, err := r.db.Exec(ctx, `
		UPDATE organizations
		SET name=$1, slug=$2, contact_email=$3, phone=$4, domain=$5, active=$6, updated_at=now()
		WHERE id=$7`,
		o.Name, o.Slug, o.ContactEmail, o.Phone, o.Domain, o.Active, o.ID)
	return err
}

func (r *OrgRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id=$1`, id)
	return err
}
