package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

// BookingRepo persists campaign_assets rows — one asset's booking within a
// campaign, including the derived booked_days/daily_rate/rent_amount trio.
type BookingRepo struct {
	pool *pgxpool.Pool
}

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{pool: pool}
}

const bookingCols = `id, campaign_id, asset_id, start_date, end_date, billing_mode,
	monthly_rate, printing_cost, mounting_cost, booked_days, daily_rate, rent_amount,
	installed_at, proof_photo_url, mounter_name, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*models.CampaignAsset, error) {
	var b models.CampaignAsset
	err := row.Scan(&b.ID, &b.CampaignID, &b.AssetID, &b.StartDate, &b.EndDate,
		&b.BillingMode, &b.MonthlyRate, &b.PrintingCost, &b.MountingCost,
		&b.BookedDays, &b.DailyRate, &b.RentAmount,
		&b.InstalledAt, &b.ProofPhotoURL, &b.MounterName, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *models.CampaignAsset) error {
	return createBooking(ctx, r.pool, b)
}

func createBooking(ctx context.Context, q querier, b *models.CampaignAsset) error {
	return q.QueryRow(ctx, `
		INSERT INTO campaign_assets (campaign_id, asset_id, start_date, end_date, billing_mode,
		                             monthly_rate, printing_cost, mounting_cost,
		                             booked_days, daily_rate, rent_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, b.CampaignID, b.AssetID, b.StartDate, b.EndDate, b.BillingMode,
		b.MonthlyRate, b.PrintingCost, b.MountingCost,
		b.BookedDays, b.DailyRate, b.RentAmount,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// querier lets the same insert run on the pool or inside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CampaignAsset, error) {
	return scanBooking(r.pool.QueryRow(ctx,
		`SELECT `+bookingCols+` FROM campaign_assets WHERE id = $1`, id))
}

// GetByIDs bulk-fetches bookings keyed by id; absent ids are omitted.
func (r *BookingRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.CampaignAsset, error) {
	result := make(map[uuid.UUID]models.CampaignAsset, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+` FROM campaign_assets WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result[b.ID] = *b
	}
	return result, rows.Err()
}

func (r *BookingRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.CampaignAsset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+` FROM campaign_assets WHERE campaign_id = $1 ORDER BY created_at`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.CampaignAsset
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *BookingRepo) Update(ctx context.Context, b *models.CampaignAsset) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_assets SET start_date = $1, end_date = $2, billing_mode = $3,
		       monthly_rate = $4, printing_cost = $5, mounting_cost = $6,
		       booked_days = $7, daily_rate = $8, rent_amount = $9, updated_at = now()
		WHERE id = $10
	`, b.StartDate, b.EndDate, b.BillingMode, b.MonthlyRate, b.PrintingCost, b.MountingCost,
		b.BookedDays, b.DailyRate, b.RentAmount, b.ID)
	return err
}

// ResetInstallation clears the operational state for a fresh renewal period.
func (r *BookingRepo) ResetInstallation(ctx context.Context, campaignID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaign_assets
		SET installed_at = NULL, proof_photo_url = NULL, mounter_name = NULL, updated_at = now()
		WHERE campaign_id = $1
	`, campaignID)
	return err
}

func (r *BookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campaign_assets WHERE id = $1`, id)
	return err
}
