package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

type AssetRepo struct {
	pool *pgxpool.Pool
}

func NewAssetRepo(pool *pgxpool.Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

const assetCols = `id, code, location, area, city, direction, media_type, illumination,
	width_ft, height_ft, total_sqft, card_rate, hsn_sac, status, created_at, updated_at`

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Code, &a.Location, &a.Area, &a.City, &a.Direction,
		&a.MediaType, &a.Illumination, &a.WidthFt, &a.HeightFt, &a.TotalSqft,
		&a.CardRate, &a.HSNSAC, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssetRepo) Create(ctx context.Context, a *models.Asset) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO assets (code, location, area, city, direction, media_type, illumination,
		                    width_ft, height_ft, total_sqft, card_rate, hsn_sac, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, a.Code, a.Location, a.Area, a.City, a.Direction, a.MediaType, a.Illumination,
		a.WidthFt, a.HeightFt, a.TotalSqft, a.CardRate, a.HSNSAC, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	return scanAsset(r.pool.QueryRow(ctx,
		`SELECT `+assetCols+` FROM assets WHERE id = $1`, id))
}

// GetByIDs bulk-fetches assets keyed by id. Absent ids are simply omitted
// from the result, never an error.
func (r *AssetRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Asset, error) {
	result := make(map[uuid.UUID]models.Asset, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+assetCols+` FROM assets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result[a.ID] = *a
	}
	return result, rows.Err()
}

// GetByCodes bulk-fetches assets keyed by their human-readable code.
func (r *AssetRepo) GetByCodes(ctx context.Context, codes []string) (map[string]models.Asset, error) {
	result := make(map[string]models.Asset, len(codes))
	if len(codes) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+assetCols+` FROM assets WHERE code = ANY($1)`, codes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result[a.Code] = *a
	}
	return result, rows.Err()
}

func (r *AssetRepo) Update(ctx context.Context, a *models.Asset) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE assets SET code = $1, location = $2, area = $3, city = $4, direction = $5,
		       media_type = $6, illumination = $7, width_ft = $8, height_ft = $9,
		       total_sqft = $10, card_rate = $11, hsn_sac = $12, status = $13, updated_at = now()
		WHERE id = $14
	`, a.Code, a.Location, a.Area, a.City, a.Direction, a.MediaType, a.Illumination,
		a.WidthFt, a.HeightFt, a.TotalSqft, a.CardRate, a.HSNSAC, a.Status, a.ID)
	return err
}

func (r *AssetRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE assets SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

func (r *AssetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	return err
}

type AssetFilter struct {
	Status    *string
	MediaType *string
	City      *string
	Search    *string
	Limit     int
	Offset    int
}

func (r *AssetRepo) List(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	query := `SELECT ` + assetCols + ` FROM assets`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.MediaType != nil {
		where = append(where, fmt.Sprintf("media_type = $%d", argIdx))
		args = append(args, *f.MediaType)
		argIdx++
	}
	if f.City != nil {
		where = append(where, fmt.Sprintf("city = $%d", argIdx))
		args = append(args, *f.City)
		argIdx++
	}
	if f.Search != nil {
		where = append(where, fmt.Sprintf("(location ILIKE '%%' || $%d || '%%' OR code ILIKE '%%' || $%d || '%%')", argIdx, argIdx))
		args = append(args, *f.Search)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY code LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}
