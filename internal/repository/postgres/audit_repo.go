package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type AuditRepo struct{ db *pgxpool.Pool }

func NewAuditRepo(db *pgxpool.Pool) repository.AuditRepository { return &AuditRepo{db: db} }

// Append is insert-only; audit rows are never updated or deleted here.
func (r *AuditRepo) Append(ctx context.Context, e *models.AuditLogEntry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO audit_logs (actor_id, action, table_name, record_id, changes)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		e.ActorID, e.Action, e.Table, e.RecordID, e.Changes).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *AuditRepo) List(ctx context.Context, table string, limit, offset int) ([]models.AuditLogEntry, int, error) {
	limit, offset = clampPage(limit, offset)

	clauses := []string{"1=1"}
	args := []any{}
	if table != "" {
		args = append(args, table)
		clauses = append(clauses, "table_name = $"+itoa(len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM audit_logs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`
		SELECT id, actor_id, action, table_name, record_id, COALESCE(changes, 'null'::jsonb), created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.AuditLogEntry
	for rows.Next() {
		var e models.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Table, &e.RecordID, &e.Changes, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}
