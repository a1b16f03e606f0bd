package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type SettingsRepo struct{ db *pgxpool.Pool }

func NewSettingsRepo(db *pgxpool.Pool) repository.SettingsRepository { return &SettingsRepo{db: db} }

func (r *SettingsRepo) List(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key, value, COALESCE(updated_by, ''), updated_at
		FROM site_settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SiteSetting
	for rows.Next() {
		var s models.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SettingsRepo) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	var s models.SiteSetting
	err := r.db.QueryRow(ctx, `
		SELECT key, value, COALESCE(updated_by, ''), updated_at
		FROM site_settings WHERE key=$1`, key).
		Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Put(ctx context.Context, key string, value []byte, updatedBy string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO site_settings (key, value, updated_by, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (key) DO UPDATE
		SET value=EXCLUDED.value, updated_by=EXCLUDED.updated_by, updated_at=now()`,
		key, value, updatedBy)
	return err
}
