package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

// SnapshotRepo reads invoice_item_snapshots — the point-in-time descriptive
// copies written at issue time. Snapshots are append-only.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

func (r *SnapshotRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceItemSnapshot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, campaign_asset_id, asset_id, asset_code,
		       location, area, direction, media_type, illumination,
		       dimension_text, hsn_sac, booking_start_date, booking_end_date, created_at
		FROM invoice_item_snapshots WHERE invoice_id = $1
	`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.InvoiceItemSnapshot
	for rows.Next() {
		var s models.InvoiceItemSnapshot
		if err := rows.Scan(&s.ID, &s.InvoiceID, &s.CampaignAssetID, &s.AssetID, &s.AssetCode,
			&s.Location, &s.Area, &s.Direction, &s.MediaType, &s.Illumination,
			&s.DimensionText, &s.HSNSAC, &s.BookingStart, &s.BookingEnd, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}
