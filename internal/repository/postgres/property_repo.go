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

type PropertyRepo struct{ db *pgxpool.Pool }

func NewPropertyRepo(db *pgxpool.Pool) repository.PropertyRepository { return &PropertyRepo{db: db} }

const propertyCols = `
	p.id, p.title_es, p.title_en, COALESCE(p.description_es, ''), COALESCE(p.description_en, ''),
	p.type, p.operation, p.price, p.status,
	p.zone_id, COALESCE(p.neighborhood, ''), COALESCE(p.address, ''), p.lat, p.lng,
	p.bedrooms, p.bathrooms, p.parking, p.built_area, p.lot_area,
	p.agent_id, p.organization_id, p.featured,
	COALESCE(a.display_name, ''), p.created_at, p.updated_at`

const propertyJoin = `properties p LEFT JOIN profiles a ON a.user_id = p.agent_id`

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.TitleES, &p.TitleEN, &p.DescriptionES, &p.DescriptionEN,
		&p.Type, &p.Operation, &p.Price, &p.Status,
		&p.ZoneID, &p.Neighborhood, &p.Address, &p.Lat, &p.Lng,
		&p.Bedrooms, &p.Bathrooms, &p.Parking, &p.BuiltArea, &p.LotArea,
		&p.AgentID, &p.OrgID, &p.Featured,
		&p.AgentName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func propertyWhere(f repository.PropertyFilter) ([]string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if q := strings.TrimSpace(f.Q); q != "" {
		pat := "%" + q + "%"
		args = append(args, pat)
		n := itoa(len(args))
		clauses = append(clauses,
			"(p.title_es ILIKE $"+n+" OR p.title_en ILIKE $"+n+
				" OR p.description_es ILIKE $"+n+" OR p.description_en ILIKE $"+n+")")
	}
	if f.Type != "" {
		args = append(args, f.Type)
		clauses = append(clauses, "p.type = $"+itoa(len(args)))
	}
	if f.Operation != "" {
		args = append(args, f.Operation)
		clauses = append(clauses, "p.operation = $"+itoa(len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, "p.status = $"+itoa(len(args)))
	}
	if f.ZoneID != "" {
		args = append(args, f.ZoneID)
		clauses = append(clauses, "p.zone_id = $"+itoa(len(args)))
	}
	if f.AgentID != "" {
		args = append(args, f.AgentID)
		clauses = append(clauses, "p.agent_id = $"+itoa(len(args)))
	}
	if f.OrgID != nil {
		args = append(args, *f.OrgID)
		clauses = append(clauses, "p.organization_id = $"+itoa(len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		clauses = append(clauses, "p.price >= $"+itoa(len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		clauses = append(clauses, "p.price <= $"+itoa(len(args)))
	}
	if f.Bedrooms > 0 {
		args = append(args, f.Bedrooms)
		clauses = append(clauses, "p.bedrooms >= $"+itoa(len(args)))
	}
	if f.Bathrooms > 0 {
		args = append(args, f.Bathrooms)
		clauses = append(clauses, "p.bathrooms >= $"+itoa(len(args)))
	}
	if f.Featured != nil {
		args = append(args, *f.Featured)
		clauses = append(clauses, "p.featured = $"+itoa(len(args)))
	}
	return clauses, args
}

func propertyOrder(sort, order string) string {
	col := "p.updated_at"
	switch sort {
	case "price":
		col = "p.price"
	case "created_at":
		col = "p.created_at"
	case "updated_at":
		col = "p.updated_at"
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

func (r *PropertyRepo) List(ctx context.Context, f repository.PropertyFilter) ([]models.Property, int, error) {
	limit, offset := clampPage(f.Limit, f.Offset)
	clauses, args := propertyWhere(f)
	where := strings.Join(clauses, " AND ")

	var total int
	countSQL := `SELECT COUNT(*) FROM ` + propertyJoin + ` WHERE ` + where
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY p.featured DESC, %s
		LIMIT $%d OFFSET $%d
	`, propertyCols, propertyJoin, where, propertyOrder(f.Sort, f.Order), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Property
	ids := make([]string, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachImages(ctx, ids, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PropertyRepo) attachImages(ctx context.Context, ids []string, props []models.Property) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, property_id, url, COALESCE(variants, 'null'::jsonb), position, created_at
		FROM property_images
		WHERE property_id = ANY($1)
		ORDER BY property_id, position ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byProp := map[string][]models.PropertyImage{}
	for rows.Next() {
		var img models.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Variants, &img.Position, &img.CreatedAt); err != nil {
			return err
		}
		byProp[img.PropertyID] = append(byProp[img.PropertyID], img)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range props {
		props[i].Images = byProp[props[i].ID]
	}
	return nil
}

func (r *PropertyRepo) Get(ctx context.Context, id string) (*models.Property, error) {
	p, err := scanProperty(r.db.QueryRow(ctx, `
		SELECT `+propertyCols+`
		FROM `+propertyJoin+`
		WHERE p.id=$1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := r.attachImagesOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepo) attachImagesOne(ctx context.Context, p *models.Property) error {
	props := []models.Property{*p}
	if err := r.attachImages(ctx, []string{p.ID}, props); err != nil {
		return err
	}
	p.Images = props[0].Images
	return nil
}

func (r *PropertyRepo) Create(ctx context.Context, p *models.Property) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO properties (
			title_es, title_en, description_es, description_en,
			type, operation, price, status,
			zone_id, neighborhood, address, lat, lng,
			bedrooms, bathrooms, parking, built_area, lot_area,
			agent_id, organization_id, featured
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id, created_at, updated_at`,
		p.TitleES, p.TitleEN, p.DescriptionES, p.DescriptionEN,
		p.Type, p.Operation, p.Price, p.Status,
		p.ZoneID, p.Neighborhood, p.Address, p.Lat, p.Lng,
		p.Bedrooms, p.Bathrooms, p.Parking, p.BuiltArea, p.LotArea,
		p.AgentID, p.OrgID, p.Featured).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PropertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
		UPDATE properties SET
			title_es=$1, title_en=$2, description_es=$3, description_en=$4,
			type=$5, operation=$6, price=$7, status=$8,
			zone_id=$9, neighborhood=$10, address=$11, lat=$12, lng=$13,
			bedrooms=$14, bathrooms=$15, parking=$16, built_area=$17, lot_area=$18,
			agent_id=$19, featured=$20, updated_at=now()
		WHERE id=$21`,
		p.TitleES, p.TitleEN, p.DescriptionES, p.DescriptionEN,
		p.Type, p.Operation, p.Price, p.Status,
		p.ZoneID, p.Neighborhood, p.Address, p.Lat, p.Lng,
		p.Bedrooms, p.Bathrooms, p.Parking, p.BuiltArea, p.LotArea,
		p.AgentID, p.Featured, p.ID)
	return err
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

func (r *PropertyRepo) SetFeatured(ctx context.Context, id string, featured bool) error {
	_, err := r.db.Exec(ctx, `
		UPDATE properties SET featured=$1, updated_at=now() WHERE id=$2`, featured, id)
	return err
}

func (r *PropertyRepo) AddImage(ctx context.Context, img *models.PropertyImage) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO property_images (property_id, url, variants, position)
		VALUES ($1,$2,$3, COALESCE(
			(SELECT MAX(position)+1 FROM property_images WHERE property_id=$1), 0))
		RETURNING id, position, created_at`,
		img.PropertyID, img.URL, img.Variants).
		Scan(&img.ID, &img.Position, &img.CreatedAt)
}

func (r *PropertyRepo) RemoveImage(ctx context.Context, imageID string) (string, error) {
	var url string
	err := r.db.QueryRow(ctx, `
		DELETE FROM property_images WHERE id=$1 RETURNING url`, imageID).Scan(&url)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return url, nil
}

// ReorderImages rewrites positions to match the given id order.
func (r *PropertyRepo) ReorderImages(ctx context.Context, propertyID string, imageIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i, id := range imageIDs {
		if _, err := tx.Exec(ctx, `
			UPDATE property_images SET position=$1
			WHERE id=$2 AND property_id=$3`, i, id, propertyID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PropertyRepo) CountByStatus(ctx context.Context, orgID *string, status string) (int, error) {
	args := []any{status}
	sql := `SELECT COUNT(*) FROM properties WHERE status=$1`
	if orgID != nil {
		args = append(args, *orgID)
		sql += ` AND organization_id=$2`
	}
	var n int
	err := r.db.QueryRow(ctx, sql, args...).Scan(&n)
	return n, err
}
