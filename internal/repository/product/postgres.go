package product

import (
	"context"
	"errors"
	"io"
	"log"

	"vibecommerce/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT id::text, name, price_cents, description, image_url, category, created_at
FROM products
ORDER BY created_at, name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, price_cents, description, image_url, category, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.PriceCents, &p.Description, &p.ImageURL, &p.Category, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		r.logger.Printf("product repo: count error=%v", err)
		return 0, err
	}
	return count, nil
}

func (r *postgresRepo) Insert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, price_cents, description, image_url, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (name) DO UPDATE
SET price_cents = EXCLUDED.price_cents,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    category = EXCLUDED.category
RETURNING id::text, name, price_cents, description, image_url, category, created_at
`
	var out domain.Product
	err := r.pool.QueryRow(ctx, q, p.Name, p.PriceCents, p.Description, p.ImageURL, p.Category).Scan(
		&out.ID, &out.Name, &out.PriceCents, &out.Description, &out.ImageURL, &out.Category, &out.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("product repo: insert name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}
