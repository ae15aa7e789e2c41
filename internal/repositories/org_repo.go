package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

// OrgRepo reads and writes the single organization-settings row.
type OrgRepo struct {
	pool *pgxpool.Pool
}

func NewOrgRepo(pool *pgxpool.Pool) *OrgRepo {
	return &OrgRepo{pool: pool}
}

func (r *OrgRepo) Get(ctx context.Context) (*models.OrgSettings, error) {
	var o models.OrgSettings
	err := r.pool.QueryRow(ctx, `
		SELECT id, company_name, address, gstin, phone, email,
		       bank_name, bank_account_no, bank_ifsc, logo_url,
		       invoice_prefix, default_gst_percent, updated_at
		FROM org_settings LIMIT 1
	`).Scan(&o.ID, &o.CompanyName, &o.Address, &o.GSTIN, &o.Phone, &o.Email,
		&o.BankName, &o.BankAccountNo, &o.BankIFSC, &o.LogoURL,
		&o.InvoicePrefix, &o.DefaultGST, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrgRepo) Update(ctx context.Context, o *models.OrgSettings) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE org_settings SET company_name = $1, address = $2, gstin = $3, phone = $4,
		       email = $5, bank_name = $6, bank_account_no = $7, bank_ifsc = $8,
		       logo_url = $9, invoice_prefix = $10, default_gst_percent = $11, updated_at = now()
		WHERE id = $12
	`, o.CompanyName, o.Address, o.GSTIN, o.Phone, o.Email,
		o.BankName, o.BankAccountNo, o.BankIFSC, o.LogoURL,
		o.InvoicePrefix, o.DefaultGST, o.ID)
	return err
}
