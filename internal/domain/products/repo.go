package products

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, userID int64, name, variety, brand, size string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (user_id, product_name, variety, brand, size)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, user_id, product_name, variety, brand, size, created_at
	`, userID, name, variety, brand, size)

	var p Product
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.Brand, &p.Size, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, product_name, variety, brand, size, created_at
		FROM products WHERE id = $1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.Brand, &p.Size, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, product_name, variety, brand, size, created_at
		FROM products
		WHERE user_id = $1
		ORDER BY product_name, variety, brand, size
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.Brand, &p.Size, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SearchByName ищет товары по части названия/бренда, без учёта регистра.
func (r *Repo) SearchByName(ctx context.Context, userID int64, q string) ([]Product, error) {
	like := "%" + q + "%"
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, product_name, variety, brand, size, created_at
		FROM products
		WHERE user_id = $1 AND (product_name ILIKE $2 OR brand ILIKE $2)
		ORDER BY product_name
	`, userID, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.Brand, &p.Size, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
