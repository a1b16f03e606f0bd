package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
)

type LeadRepo struct{ db *pgxpool.Pool }

func NewLeadRepo(db *pgxpool.Pool) repository.LeadRepository { return &LeadRepo{db: db} }

func leadWhere(orgID *string, status string) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if orgID != nil {
		args = append(args, *orgID)
		clauses = append(clauses, "organization_id = $"+itoa(len(args)))
	}
	if status != "" {
		args = append(args, status)
		clauses = append(clauses, "status = $"+itoa(len(args)))
	}
	return clauses, args
}

func (r *LeadRepo) CreateInquiry(ctx context.Context, in *models.ContactInquiry) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO contact_inquiries (name, email, phone, message, property_id, organization_id, status)
		VALUES ($1,$2,$3,$4,$5,$6,'new')
		RETURNING id, status, created_at, updated_at`,
		in.Name, in.Email, in.Phone, in.Message, in.PropertyID, in.OrgID).
		Scan(&in.ID, &in.Status, &in.CreatedAt, &in.UpdatedAt)
}

func (r *LeadRepo) ListInquiries(ctx context.Context, orgID *string, status string, limit, offset int) ([]models.ContactInquiry, int, error) {
	limit, offset = clampPage(limit, offset)
	clauses, args := leadWhere(orgID, status)
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_inquiries WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`
		SELECT id, name, email, COALESCE(phone, ''), message, property_id, organization_id, status, created_at, updated_at
		FROM contact_inquiries
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.ContactInquiry
	for rows.Next() {
		var in models.ContactInquiry
		if err := rows.Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &in.Message,
			&in.PropertyID, &in.OrgID, &in.Status, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, in)
	}
	return out, total, rows.Err()
}

func (r *LeadRepo) UpdateInquiryStatus(ctx context.Context, id, status string) (*models.ContactInquiry, error) {
	var in models.ContactInquiry
	err := r.db.QueryRow(ctx, `
		UPDATE contact_inquiries SET status=$1, updated_at=now()
		WHERE id=$2
		RETURNING id, name, email, COALESCE(phone, ''), message, property_id, organization_id, status, created_at, updated_at`,
		status, id).
		Scan(&in.ID, &in.Name, &in.Email, &in.Phone, &in.Message,
			&in.PropertyID, &in.OrgID, &in.Status, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &in, nil
}

func (r *LeadRepo) CreateVisit(ctx context.Context, v *models.ScheduledVisit) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO scheduled_visits (name, email, phone, message, property_id, organization_id, visit_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,'pending')
		RETURNING id, status, created_at, updated_at`,
		v.Name, v.Email, v.Phone, v.Message, v.PropertyID, v.OrgID, v.VisitDate).
		Scan(&v.ID, &v.Status, &v.CreatedAt, &v.UpdatedAt)
}

func (r *LeadRepo) ListVisits(ctx context.Context, orgID *string, status string, limit, offset int) ([]models.ScheduledVisit, int, error) {
	limit, offset = clampPage(limit, offset)
	clauses, args := leadWhere(orgID, status)
	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM scheduled_visits WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := fmt.Sprintf(`
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(message, ''), property_id, organization_id, visit_date, status, created_at, updated_at
		FROM scheduled_visits
		WHERE %s
		ORDER BY visit_date ASC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.ScheduledVisit
	for rows.Next() {
		var v models.ScheduledVisit
		if err := rows.Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Message,
			&v.PropertyID, &v.OrgID, &v.VisitDate, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, v)
	}
	return out, total, rows.Err()
}

func (r *LeadRepo) UpdateVisitStatus(ctx context.Context, id, status string) (*models.ScheduledVisit, error) {
	var v models.ScheduledVisit
	err := r.db.QueryRow(ctx, `
		UPDATE scheduled_visits SET status=$1, updated_at=now()
		WHERE id=$2
		RETURNING id, name, email, COALESCE(phone, ''), COALESCE(message, ''), property_id, organization_id, visit_date, status, created_at, updated_at`,
		status, id).
		Scan(&v.ID, &v.Name, &v.Email, &v.Phone, &v.Message,
			&v.PropertyID, &v.OrgID, &v.VisitDate, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *LeadRepo) CountInquiries(ctx context.Context, orgID *string, status string) (int, error) {
	clauses, args := leadWhere(orgID, status)
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contact_inquiries WHERE `+strings.Join(clauses, " AND "), args...).Scan(&n)
	return n, err
}

func (r *LeadRepo) CountVisits(ctx context.Context, orgID *string, status string) (int, error) {
	clauses, args := leadWhere(orgID, status)
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM scheduled_visits WHERE `+strings.Join(clauses, " AND "), args...).Scan(&n)
	return n, err
}
