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

type ProfileRepo struct{ db *pgxpool.Pool }

func NewProfileRepo(db *pgxpool.Pool) repository.ProfileRepository { return &ProfileRepo{db: db} }

const profileCols = `
	p.user_id, u.email, p.display_name, p.role, p.organization_id, COALESCE(p.phone, ''),
	COALESCE(p.photo_url, ''), COALESCE(p.bio_es, ''), COALESCE(p.bio_en, ''),
	COALESCE(p.languages, '{}'), COALESCE(p.service_zone_ids, '{}'),
	COALESCE(p.specialty, ''), COALESCE(p.social_links, 'null'::jsonb),
	p.is_complete, p.created_at, p.updated_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.UserID, &p.Email, &p.DisplayName, &p.Role, &p.OrganizationID, &p.Phone,
		&p.PhotoURL, &p.BioES, &p.BioEN, &p.Languages, &p.ServiceZoneIDs,
		&p.Specialty, &p.SocialLinks, &p.IsComplete, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Create(ctx context.Context, userID, displayName, role string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (user_id, display_name, role)
		VALUES ($1,$2,$3)`, userID, displayName, role)
	return err
}

func (r *ProfileRepo) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `
		SELECT `+profileCols+`
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.user_id=$1`, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepo) Assignments(ctx context.Context, userID string) ([]models.RoleAssignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, role, organization_id, created_at
		FROM role_assignments WHERE user_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RoleAssignment
	for rows.Next() {
		var a models.RoleAssignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Role, &a.OrganizationID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update writes the self-service fields (everything except role/org, which go
// through SetRoleOrg and are audit-logged separately).
func (r *ProfileRepo) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	out, err := scanProfile(r.db.QueryRow(ctx, `
		WITH updated AS (
			UPDATE profiles
			SET display_name=$1, phone=$2, photo_url=$3, bio_es=$4, bio_en=$5,
			    languages=$6, service_zone_ids=$7, specialty=$8, social_links=$9,
			    is_complete=$10, updated_at=now()
			WHERE user_id=$11
			RETURNING *
		)
		SELECT `+profileCols+`
		FROM updated p JOIN users u ON u.id = p.user_id`,
		p.DisplayName, p.Phone, p.PhotoURL, p.BioES, p.BioEN,
		p.Languages, p.ServiceZoneIDs, p.Specialty, p.SocialLinks,
		p.IsComplete, p.UserID))
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProfileRepo) SetRoleOrg(ctx context.Context, userID, role string, orgID *string) (*models.Profile, error) {
	out, err := scanProfile(r.db.QueryRow(ctx, `
		WITH updated AS (
			UPDATE profiles
			SET role=$1, organization_id=$2, updated_at=now()
			WHERE user_id=$3
			RETURNING *
		)
		SELECT `+profileCols+`
		FROM updated p JOIN users u ON u.id = p.user_id`,
		role, orgID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

// List returns a filtered, paginated page of profiles with emails joined.
// Filters: q (display name or email, ILIKE), role (exact), orgID.
func (r *ProfileRepo) List(ctx context.Context, q, role string, orgID *string, limit, offset int) ([]models.Profile, int, error) {
	limit, offset = clampPage(limit, offset)

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(q); s != "" {
		pat := "%" + s + "%"
		args = append(args, pat, pat)
		clauses = append(clauses, "(p.display_name ILIKE $"+itoa(len(args)-1)+" OR u.email ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(role); s != "" {
		args = append(args, s)
		clauses = append(clauses, "p.role = $"+itoa(len(args)))
	}
	if orgID != nil {
		args = append(args, *orgID)
		clauses = append(clauses, "p.organization_id = $"+itoa(len(args)))
	}
	where := strings.Join(clauses, " AND ")

	var total int
	countSQL := `SELECT COUNT(*) FROM profiles p JOIN users u ON u.id = p.user_id WHERE ` + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.updated_at DESC
		LIMIT $%d OFFSET $%d
	`, profileCols, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

// ListAgents returns completed agent profiles for the public directory.
func (r *ProfileRepo) ListAgents(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+profileCols+`
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.role = 'agent' AND p.is_complete AND u.active
		ORDER BY p.display_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProfileRepo) AddAssignment(ctx context.Context, userID, role string, orgID *string) (*models.RoleAssignment, error) {
	var a models.RoleAssignment
	err := r.db.QueryRow(ctx, `
		INSERT INTO role_assignments (user_id, role, organization_id)
		VALUES ($1,$2,$3)
		RETURNING id, user_id, role, organization_id, created_at`,
		userID, role, orgID).
		Scan(&a.ID, &a.UserID, &a.Role, &a.OrganizationID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ProfileRepo) RemoveAssignment(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM role_assignments WHERE id=$1`, id)
	return err
}
