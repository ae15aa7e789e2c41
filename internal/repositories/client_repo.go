package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ooh-media/backend/internal/models"
)

type ClientRepo struct {
	pool *pgxpool.Pool
}

func NewClientRepo(pool *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{pool: pool}
}

const clientCols = `id, name, contact_person, phone, email, gstin, billing_address, city, state, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email, &c.GSTIN,
		&c.BillingAddress, &c.City, &c.State, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, contact_person, phone, email, gstin, billing_address, city, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.Name, c.ContactPerson, c.Phone, c.Email, c.GSTIN, c.BillingAddress, c.City, c.State,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	return scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientCols+` FROM clients WHERE id = $1`, id))
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE clients SET name = $1, contact_person = $2, phone = $3, email = $4,
		       gstin = $5, billing_address = $6, city = $7, state = $8, updated_at = now()
		WHERE id = $9
	`, c.Name, c.ContactPerson, c.Phone, c.Email, c.GSTIN, c.BillingAddress, c.City, c.State, c.ID)
	return err
}

func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}

type ClientFilter struct {
	Search *string
	City   *string
	Limit  int
	Offset int
}

func (r *ClientRepo) List(ctx context.Context, f ClientFilter) ([]models.Client, error) {
	query := `SELECT ` + clientCols + ` FROM clients`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Search != nil {
		where = append(where, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", argIdx))
		args = append(args, *f.Search)
		argIdx++
	}
	if f.City != nil {
		where = append(where, fmt.Sprintf("city = $%d", argIdx))
		args = append(args, *f.City)
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
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
