package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/errs"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// apply обновляет остаток и пишет строку истории одной транзакцией.
// delta > 0 => приход (purchases); delta < 0 => продажа (sales).
func (r *Repo) apply(ctx context.Context, productID, unitID, userID int64, delta, price float64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE inventories SET current_stock = current_stock + $4
			WHERE product_id = $1 AND (unit_id = $2 OR unit_id IS NULL) AND user_id = $3
		`, productID, unitID, userID, delta)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO inventories (product_id, unit_id, user_id, current_stock)
				VALUES ($1,$2,$3,$4)
			`, productID, unitID, userID, delta); err != nil {
				return err
			}
		}

		if delta > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO purchases (product_id, unit_id, user_id, quantity, order_price)
				VALUES ($1,$2,$3,$4,$5)
			`, productID, unitID, userID, delta, price)
		} else {
			_, err = tx.Exec(ctx, `
				INSERT INTO sales (product_id, unit_id, user_id, quantity, retail_price)
				VALUES ($1,$2,$3,$4,$5)
			`, productID, unitID, userID, -delta, price)
		}
		return err
	})
}

func (r *Repo) Receive(ctx context.Context, productID, unitID, userID int64, qty, orderPrice float64) error {
	if qty <= 0 {
		return errs.Validationf("qty must be > 0, got %v", qty)
	}
	return r.apply(ctx, productID, unitID, userID, qty, orderPrice)
}

// Sell списывает без проверок — остаток может уйти в минус.
func (r *Repo) Sell(ctx context.Context, productID, unitID, userID int64, qty, retailPrice float64) error {
	if qty <= 0 {
		return errs.Validationf("qty must be > 0, got %v", qty)
	}
	return r.apply(ctx, productID, unitID, userID, -qty, retailPrice)
}

// GetStock возвращает текущий остаток (0, nil если записи нет).
func (r *Repo) GetStock(ctx context.Context, productID, userID int64) (float64, error) {
	var qty float64
	err := r.pool.QueryRow(ctx, `
		SELECT current_stock
		FROM inventories
		WHERE product_id = $1 AND user_id = $2
		ORDER BY id DESC
		LIMIT 1
	`, productID, userID).Scan(&qty)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	return qty, err
}

func (r *Repo) GetByProduct(ctx context.Context, productID int64) (*Stock, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, unit_id, user_id, current_stock, created_at
		FROM inventories
		WHERE product_id = $1
		ORDER BY id DESC
		LIMIT 1
	`, productID)
	var s Stock
	if err := row.Scan(&s.ID, &s.ProductID, &s.UnitID, &s.UserID, &s.CurrentStock, &s.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
