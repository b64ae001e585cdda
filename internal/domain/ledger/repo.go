package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
)

type Repo struct {
	pool *pgxpool.Pool
	caps db.Capabilities
}

func NewRepo(pool *pgxpool.Pool, caps db.Capabilities) *Repo {
	return &Repo{pool: pool, caps: caps}
}

func (r *Repo) AddOffering(ctx context.Context, productID, userID int64, shopName string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO product_offerings (product_id, user_id, shop_name)
		VALUES ($1,$2,$3)
		RETURNING id
	`, productID, userID, shopName).Scan(&id)
	return id, err
}

// TotalsByProduct считает историю по товару. Отсутствующие в схеме таблицы
// дают ноль — это "нечего считать", а не ошибка.
func (r *Repo) TotalsByProduct(ctx context.Context, productID int64) (Totals, error) {
	var t Totals
	if r.caps.Purchases {
		if err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM purchases WHERE product_id = $1`, productID,
		).Scan(&t.Purchases); err != nil {
			return t, err
		}
	}
	if r.caps.Sales {
		if err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM sales WHERE product_id = $1`, productID,
		).Scan(&t.Sales); err != nil {
			return t, err
		}
	}
	if r.caps.ProductOfferings {
		if err := r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM product_offerings WHERE product_id = $1`, productID,
		).Scan(&t.Offerings); err != nil {
			return t, err
		}
	}
	return t, nil
}

func (r *Repo) ListPurchasesByProduct(ctx context.Context, productID int64) ([]Purchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, unit_id, user_id, quantity, order_price, created_at
		FROM purchases
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.ProductID, &p.UnitID, &p.UserID, &p.Quantity, &p.OrderPrice, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ListSalesByProduct(ctx context.Context, productID int64) ([]Sale, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, unit_id, user_id, quantity, retail_price, created_at
		FROM sales
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.UnitID, &s.UserID, &s.Quantity, &s.RetailPrice, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
