package prices

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/metrics"
)

// Validator охраняет инвариант кэша цен: строка цены всегда ссылается на юнит,
// который действительно принадлежит заявленному товару. Исторически этот
// инвариант ломался, поэтому запись через Validator самовосстанавливающаяся.
type Validator struct {
	pool   *pgxpool.Pool
	prices *Repo
	log    *slog.Logger
}

func NewValidator(pool *pgxpool.Pool, prices *Repo, log *slog.Logger) *Validator {
	return &Validator{pool: pool, prices: prices, log: log}
}

// ValidateUnitBelongsToProduct — true, если юнит числится за товаром у пользователя.
func (v *Validator) ValidateUnitBelongsToProduct(ctx context.Context, productID, unitID, userID int64) (bool, error) {
	var one int
	err := v.pool.QueryRow(ctx, `
		SELECT 1 FROM units
		WHERE id = $1 AND product_id = $2 AND user_id = $3
	`, unitID, productID, userID).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SafeUpsert пишет цену, предварительно сверив пару (товар, юнит).
// Само решение — в ResolvePriceWrite: при расхождении запись не валится,
// product_id правится на настоящего владельца юнита с предупреждением в лог.
// Если юнит вообще не найден у пользователя — ошибка, записи нет.
func (v *Validator) SafeUpsert(ctx context.Context, d PriceData) (int64, error) {
	var actual int64
	found := true
	err := v.pool.QueryRow(ctx,
		`SELECT product_id FROM units WHERE id = $1 AND user_id = $2`,
		d.UnitID, d.UserID,
	).Scan(&actual)
	if err == pgx.ErrNoRows {
		found = false
	} else if err != nil {
		return 0, err
	}

	dec, err := ResolvePriceWrite(d, actual, found)
	if err != nil {
		return 0, err
	}
	if dec.Violation != nil {
		v.log.Warn("price write auto-corrected", "err", dec.Violation, "user_id", d.UserID)
		metrics.PriceAutocorrects.Inc()
	}
	d.ProductID = dec.ProductID
	return v.prices.Upsert(ctx, d)
}
