package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type ZoneRepo struct{ db *pgxpool.Pool }

func NewZoneRepo(db *pgxpool.Pool) repository.ZoneRepository { return &ZoneRepo{db: db} }

func (r *ZoneRepo) List(ctx context.Context, activeOnly bool) ([]models.ServiceZone, error) {
	sql := `SELECT id, name_es, name_en, slug, active, created_at FROM service_zones`
	if activeOnly {
		sql += ` WHERE active`
	}
	sql += ` ORDER BY name_es ASC`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ServiceZone
	for rows.Next() {
		var z models.ServiceZone
		if err := rows.Scan(&z.ID, &z.NameES, &z.NameEN, &z.Slug, &z.Active, &z.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func (r *ZoneRepo) Create(ctx context.Context, z *models.ServiceZone) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO service_zones (name_es, name_en, slug, active)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		z.NameES, z.NameEN, z.Slug, z.Active).
		Scan(&z.ID, &z.CreatedAt)
}

func (r *ZoneRepo) Update(ctx context.Context, z *models.ServiceZone) error {
	_, err := r.db.Exec(ctx, `
		UPDATE service_zones SET name_es=$1, name_en=$2, slug=$3, active=$4
		WHERE id=$5`,
		z.NameES, z.NameEN, z.Slug, z.Active, z.ID)
	return err
}

func (r *ZoneRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM service_zones WHERE id=$1`, id)
	return err
}
