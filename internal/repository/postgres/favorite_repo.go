package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type FavoriteRepo struct{ db *pgxpool.Pool }

func NewFavoriteRepo(db *pgxpool.Pool) repository.FavoriteRepository { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) ListIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT property_id FROM user_favorites
		WHERE user_id=$1
		ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *FavoriteRepo) Add(ctx context.Context, userID, propertyID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_favorites (user_id, property_id)
		VALUES ($1,$2)
		ON CONFLICT (user_id, property_id) DO NOTHING`, userID, propertyID)
	return err
}

func (r *FavoriteRepo) AddMany(ctx context.Context, userID string, propertyIDs []string) error {
	if len(propertyIDs) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_favorites (user_id, property_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (user_id, property_id) DO NOTHING`, userID, propertyIDs)
	return err
}

func (r *FavoriteRepo) Remove(ctx context.Context, userID, propertyID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM user_favorites WHERE user_id=$1 AND property_id=$2`, userID, propertyID)
	return err
}

func (r *FavoriteRepo) Clear(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_favorites WHERE user_id=$1`, userID)
	return err
}
