package prices

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Upsert сначала пробует UPDATE по ключу; если строк нет — INSERT.
// Повторный вызов с теми же данными оставляет одну строку со свежим updated_at.
func (r *Repo) Upsert(ctx context.Context, d PriceData) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		UPDATE current_price
		SET retail_price = $4, order_price = $5, updated_at = now()
		WHERE product_id = $1 AND unit_id = $2 AND user_id = $3
		RETURNING id
	`, d.ProductID, d.UnitID, d.UserID, d.RetailPrice, d.OrderPrice).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO current_price (product_id, unit_id, user_id, retail_price, order_price)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id
	`, d.ProductID, d.UnitID, d.UserID, d.RetailPrice, d.OrderPrice).Scan(&id)
	return id, err
}

// UpdateRetailPrice трогает только розничную цену; при создании строки
// закупочная цена по умолчанию 0.
func (r *Repo) UpdateRetailPrice(ctx context.Context, productID, unitID, userID int64, retail float64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		UPDATE current_price
		SET retail_price = $4, updated_at = now()
		WHERE product_id = $1 AND unit_id = $2 AND user_id = $3
		RETURNING id
	`, productID, unitID, userID, retail).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO current_price (product_id, unit_id, user_id, retail_price, order_price)
		VALUES ($1,$2,$3,$4,0)
		RETURNING id
	`, productID, unitID, userID, retail).Scan(&id)
	return id, err
}

// UpdateOrderPrice — то же самое для закупочной цены.
func (r *Repo) UpdateOrderPrice(ctx context.Context, productID, unitID, userID int64, order float64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		UPDATE current_price
		SET order_price = $4, updated_at = now()
		WHERE product_id = $1 AND unit_id = $2 AND user_id = $3
		RETURNING id
	`, productID, unitID, userID, order).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return 0, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO current_price (product_id, unit_id, user_id, retail_price, order_price)
		VALUES ($1,$2,$3,0,$4)
		RETURNING id
	`, productID, unitID, userID, order).Scan(&id)
	return id, err
}

// Suggestions отдаёт все юниты товара, включая те, у которых цены ещё нет —
// для них нули, чтобы вызывающий видел полную картину.
func (r *Repo) Suggestions(ctx context.Context, productID, userID int64) ([]Suggestion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.unit_type, u.unit_category,
		       COALESCE(cp.retail_price, 0.00),
		       COALESCE(cp.order_price, 0.00),
		       cp.id IS NOT NULL
		FROM units u
		LEFT JOIN current_price cp
		       ON cp.unit_id = u.id AND cp.product_id = u.product_id AND cp.user_id = $2
		WHERE u.product_id = $1 AND u.user_id = $2
		ORDER BY u.id
	`, productID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.UnitID, &s.UnitType, &s.Category, &s.RetailPrice, &s.OrderPrice, &s.HasPrice); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetByKey(ctx context.Context, productID, unitID, userID int64) (*CurrentPrice, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, unit_id, user_id, retail_price, order_price, updated_at
		FROM current_price
		WHERE product_id = $1 AND unit_id = $2 AND user_id = $3
	`, productID, unitID, userID)
	var p CurrentPrice
	if err := row.Scan(&p.ID, &p.ProductID, &p.UnitID, &p.UserID, &p.RetailPrice, &p.OrderPrice, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
