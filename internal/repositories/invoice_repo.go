package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ooh-media/backend/internal/models"
)

type InvoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepo(pool *pgxpool.Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

const invoiceCols = `id, invoice_no, campaign_id, client_id, status, issue_date, due_date,
	sub_total, gst_percent, gst_amount, total_amount, amount_paid, balance_due, notes,
	created_at, updated_at`

func scanInvoice(row interface{ Scan(...any) error }) (*models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNo, &inv.CampaignID, &inv.ClientID, &inv.Status,
		&inv.IssueDate, &inv.DueDate, &inv.SubTotal, &inv.GSTPercent, &inv.GSTAmount,
		&inv.TotalAmount, &inv.AmountPaid, &inv.BalanceDue, &inv.Notes,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

const itemCols = `id, invoice_id, position, campaign_asset_id, asset_id, asset_code,
	description, location, area, direction, media_type, illumination, dimensions,
	total_sqft, booking_start_date, booking_end_date, hsn_sac, rate, amount`

func scanItem(row interface{ Scan(...any) error }) (*models.InvoiceItem, error) {
	var it models.InvoiceItem
	err := row.Scan(&it.ID, &it.InvoiceID, &it.Position, &it.CampaignAssetID, &it.AssetID,
		&it.AssetCode, &it.Description, &it.Location, &it.Area, &it.Direction,
		&it.MediaType, &it.Illumination, &it.Dimensions, &it.TotalSqft,
		&it.BookingStart, &it.BookingEnd, &it.HSNSAC, &it.Rate, &it.Amount)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateWithItems inserts the invoice, its line items and their issue-time
// snapshots in one transaction.
func (r *InvoiceRepo) CreateWithItems(ctx context.Context, inv *models.Invoice,
	items []models.InvoiceItem, snapshots []models.InvoiceItemSnapshot) error {

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO invoices (invoice_no, campaign_id, client_id, status, issue_date, due_date,
		                      sub_total, gst_percent, gst_amount, total_amount, amount_paid,
		                      balance_due, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`, inv.InvoiceNo, inv.CampaignID, inv.ClientID, inv.Status, inv.IssueDate, inv.DueDate,
		inv.SubTotal, inv.GSTPercent, inv.GSTAmount, inv.TotalAmount, inv.AmountPaid,
		inv.BalanceDue, inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range items {
		it := &items[i]
		it.InvoiceID = inv.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, position, campaign_asset_id, asset_id, asset_code,
			                           description, location, area, direction, media_type, illumination,
			                           dimensions, total_sqft, booking_start_date, booking_end_date,
			                           hsn_sac, rate, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING id
		`, it.InvoiceID, it.Position, it.CampaignAssetID, it.AssetID, it.AssetCode,
			it.Description, it.Location, it.Area, it.Direction, it.MediaType, it.Illumination,
			it.Dimensions, it.TotalSqft, it.BookingStart, it.BookingEnd,
			it.HSNSAC, it.Rate, it.Amount,
		).Scan(&it.ID)
		if err != nil {
			return err
		}
	}

	for i := range snapshots {
		s := &snapshots[i]
		s.InvoiceID = inv.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO invoice_item_snapshots (invoice_id, campaign_asset_id, asset_id, asset_code,
			                                    location, area, direction, media_type, illumination,
			                                    dimension_text, hsn_sac, booking_start_date, booking_end_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`, s.InvoiceID, s.CampaignAssetID, s.AssetID, s.AssetCode,
			s.Location, s.Area, s.Direction, s.MediaType, s.Illumination,
			s.DimensionText, s.HSNSAC, s.BookingStart, s.BookingEnd)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID uuid.UUID) ([]models.InvoiceItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+itemCols+` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.InvoiceItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (r *InvoiceRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE invoices SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

// RecordPayment adds to amount_paid and rolls balance_due; the invoice
// flips to paid when the balance reaches zero.
func (r *InvoiceRepo) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET amount_paid = amount_paid + $1,
		    balance_due = total_amount - (amount_paid + $1),
		    status = CASE WHEN total_amount - (amount_paid + $1) <= 0 THEN 'paid' ELSE status END,
		    updated_at = now()
		WHERE id = $2
	`, amount, id)
	return err
}

// ListOverdue returns issued invoices past their due date with a balance.
func (r *InvoiceRepo) ListOverdue(ctx context.Context, today time.Time) ([]models.Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceCols+` FROM invoices
		WHERE status = $1 AND due_date < $2 AND balance_due > 0
	`, models.InvoiceStatusIssued, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

// NextInvoiceNo allocates the next sequential invoice number for a prefix,
// e.g. "INV/2025-26/0042".
func (r *InvoiceRepo) NextInvoiceNo(ctx context.Context, prefix string) (string, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) + 1 FROM invoices WHERE invoice_no LIKE $1 || '%'
	`, prefix).Scan(&n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, n), nil
}

type InvoiceFilter struct {
	CampaignID *uuid.UUID
	ClientID   *uuid.UUID
	Status     *string
	Limit      int
	Offset     int
}

func (r *InvoiceRepo) List(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	query := `SELECT ` + invoiceCols + ` FROM invoices`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("campaign_id = $%d", argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
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
	query += fmt.Sprintf(" ORDER BY issue_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}
