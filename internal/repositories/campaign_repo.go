package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

const campaignCols = `id, client_id, name, start_date, end_date, status,
	subtotal, printing_total, mounting_total, gst_percent, gst_amount,
	total_amount, grand_total, renewed_from, notes, created_at, updated_at`

func scanCampaign(row interface{ Scan(...any) error }) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.ID, &c.ClientID, &c.Name, &c.StartDate, &c.EndDate, &c.Status,
		&c.Subtotal, &c.PrintingTotal, &c.MountingTotal, &c.GSTPercent, &c.GSTAmount,
		&c.TotalAmount, &c.GrandTotal, &c.RenewedFrom, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (client_id, name, start_date, end_date, status,
		                       subtotal, printing_total, mounting_total, gst_percent,
		                       gst_amount, total_amount, grand_total, renewed_from, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, c.ClientID, c.Name, c.StartDate, c.EndDate, c.Status,
		c.Subtotal, c.PrintingTotal, c.MountingTotal, c.GSTPercent,
		c.GSTAmount, c.TotalAmount, c.GrandTotal, c.RenewedFrom, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return scanCampaign(r.pool.QueryRow(ctx,
		`SELECT `+campaignCols+` FROM campaigns WHERE id = $1`, id))
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET client_id = $1, name = $2, start_date = $3, end_date = $4,
		       status = $5, subtotal = $6, printing_total = $7, mounting_total = $8,
		       gst_percent = $9, gst_amount = $10, total_amount = $11, grand_total = $12,
		       notes = $13, updated_at = now()
		WHERE id = $14
	`, c.ClientID, c.Name, c.StartDate, c.EndDate, c.Status,
		c.Subtotal, c.PrintingTotal, c.MountingTotal, c.GSTPercent,
		c.GSTAmount, c.TotalAmount, c.GrandTotal, c.Notes, c.ID)
	return err
}

func (r *CampaignRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

// CreateWithBookings inserts a new campaign and its bookings atomically.
// Used by copy_new renewals so a partially created campaign never persists.
func (r *CampaignRepo) CreateWithBookings(ctx context.Context, c *models.Campaign, bookings []models.CampaignAsset) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO campaigns (client_id, name, start_date, end_date, status,
		                       subtotal, printing_total, mounting_total, gst_percent,
		                       gst_amount, total_amount, grand_total, renewed_from, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`, c.ClientID, c.Name, c.StartDate, c.EndDate, c.Status,
		c.Subtotal, c.PrintingTotal, c.MountingTotal, c.GSTPercent,
		c.GSTAmount, c.TotalAmount, c.GrandTotal, c.RenewedFrom, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range bookings {
		bookings[i].CampaignID = c.ID
		if err := createBooking(ctx, tx, &bookings[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListStartingBy returns upcoming campaigns whose start date has been reached.
func (r *CampaignRepo) ListStartingBy(ctx context.Context, today time.Time) ([]models.Campaign, error) {
	return r.listByStatusAndDate(ctx,
		`SELECT `+campaignCols+` FROM campaigns WHERE status = $1 AND start_date <= $2`,
		models.CampaignStatusUpcoming, today)
}

// ListEndedBy returns running campaigns whose end date has passed.
func (r *CampaignRepo) ListEndedBy(ctx context.Context, today time.Time) ([]models.Campaign, error) {
	return r.listByStatusAndDate(ctx,
		`SELECT `+campaignCols+` FROM campaigns WHERE status = $1 AND end_date < $2`,
		models.CampaignStatusRunning, today)
}

func (r *CampaignRepo) listByStatusAndDate(ctx context.Context, query, status string, d time.Time) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, query, status, d)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

type CampaignFilter struct {
	ClientID *uuid.UUID
	Status   *string
	Search   *string
	Limit    int
	Offset   int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignCols + ` FROM campaigns`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.ClientID != nil {
		where = append(where, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, *f.ClientID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.Search != nil {
		where = append(where, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", argIdx))
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
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}
