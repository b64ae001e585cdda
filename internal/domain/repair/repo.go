package repair

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/metrics"
)

// Repo — идемпотентные пакетные ремонты. Каждый инструмент можно гонять
// повторно: по уже чистым данным он ничего не меняет.
type Repo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewRepo(pool *pgxpool.Pool, log *slog.Logger) *Repo {
	return &Repo{pool: pool, log: log}
}

// FindOrphanUnits — юниты без товара-владельца.
func (r *Repo) FindOrphanUnits(ctx context.Context) ([]OrphanUnit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.product_id, u.user_id, u.unit_type
		FROM units u
		LEFT JOIN products p ON p.id = u.product_id
		WHERE p.id IS NULL
		ORDER BY u.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrphanUnit
	for rows.Next() {
		var o OrphanUnit
		if err := rows.Scan(&o.UnitID, &o.ProductID, &o.UserID, &o.UnitType); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// RepairOrphanUnits удаляет сирот вместе с их ребрами конверсии.
// apply=false — только отчёт, без записи.
func (r *Repo) RepairOrphanUnits(ctx context.Context, apply bool) (*Report, error) {
	orphans, err := r.FindOrphanUnits(ctx)
	if err != nil {
		return nil, err
	}
	rep := &Report{Tool: "orphan_units", Scanned: len(orphans)}
	if !apply {
		return rep, nil
	}

	for _, o := range orphans {
		err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, `
				DELETE FROM unit_conversion
				WHERE from_unit_id = $1 OR to_unit_id = $1
			`, o.UnitID); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `DELETE FROM units WHERE id = $1`, o.UnitID)
			return err
		})
		if err != nil {
			r.log.Error("orphan unit delete failed", "unit_id", o.UnitID, "err", err)
			rep.Failures = append(rep.Failures, err)
			continue
		}
		rep.Deleted++
		metrics.RepairFixes.WithLabelValues("orphan_units").Inc()
	}
	return rep, nil
}

// RepairPriceCorruption чинит строки цен, чей product_id расходится с
// настоящим владельцем юнита. Один юнит — одна транзакция; сбой по одному
// юниту не останавливает остальных.
func (r *Repo) RepairPriceCorruption(ctx context.Context) (*Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT cp.unit_id, u.product_id
		FROM current_price cp
		JOIN units u ON u.id = cp.unit_id
		WHERE cp.product_id <> u.product_id
		ORDER BY cp.unit_id
	`)
	if err != nil {
		return nil, err
	}
	type affected struct {
		unitID int64
		actual int64
	}
	var units []affected
	for rows.Next() {
		var a affected
		if err := rows.Scan(&a.unitID, &a.actual); err != nil {
			rows.Close()
			return nil, err
		}
		units = append(units, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rep := &Report{Tool: "price_corruption", Scanned: len(units)}
	for _, a := range units {
		if err := r.fixUnitPrices(ctx, a.unitID, a.actual, rep); err != nil {
			r.log.Error("price corruption fix failed", "unit_id", a.unitID, "err", err)
			rep.Failures = append(rep.Failures, err)
		}
	}
	return rep, nil
}

func (r *Repo) fixUnitPrices(ctx context.Context, unitID, actualProductID int64, rep *Report) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, product_id, updated_at
			FROM current_price
			WHERE unit_id = $1
			FOR UPDATE
		`, unitID)
		if err != nil {
			return err
		}
		var priceRows []PriceRow
		for rows.Next() {
			var pr PriceRow
			if err := rows.Scan(&pr.ID, &pr.ProductID, &pr.UpdatedAt); err != nil {
				rows.Close()
				return err
			}
			priceRows = append(priceRows, pr)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		fix := PlanPriceFix(unitID, actualProductID, priceRows)
		if fix.PromoteID != 0 {
			if _, err := tx.Exec(ctx,
				`UPDATE current_price SET product_id = $2, updated_at = now() WHERE id = $1`,
				fix.PromoteID, actualProductID,
			); err != nil {
				return err
			}
			rep.Fixed++
			metrics.RepairFixes.WithLabelValues("price_corruption").Inc()
			r.log.Warn("corrupted price row promoted",
				"row_id", fix.PromoteID, "unit_id", unitID, "product_id", actualProductID)
		}
		for _, id := range fix.DeleteIDs {
			if _, err := tx.Exec(ctx, `DELETE FROM current_price WHERE id = $1`, id); err != nil {
				return err
			}
			rep.Deleted++
			metrics.RepairFixes.WithLabelValues("price_corruption").Inc()
		}
		return nil
	})
}

// EnsurePriceUnitConstraint вешает составной внешний ключ, который не даёт
// строке цены сослаться на юнит чужого товара. Ставится после ремонта,
// повторный вызов — no-op.
func (r *Repo) EnsurePriceUnitConstraint(ctx context.Context) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_constraint
			WHERE conname = 'fk_current_price_unit_product'
		)
	`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = r.pool.Exec(ctx, `
		ALTER TABLE current_price
		ADD CONSTRAINT fk_current_price_unit_product
		FOREIGN KEY (product_id, unit_id) REFERENCES units (product_id, id)
	`)
	return err
}

// ClampNegativeInventory обнуляет отрицательные остатки.
func (r *Repo) ClampNegativeInventory(ctx context.Context) (*Report, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventories SET current_stock = 0 WHERE current_stock < 0
	`)
	if err != nil {
		return nil, err
	}
	n := int(tag.RowsAffected())
	metrics.RepairFixes.WithLabelValues("negative_inventory").Add(float64(n))
	return &Report{Tool: "negative_inventory", Scanned: n, Fixed: n}, nil
}

// BackfillMissingPrices заводит нулевую строку цены каждому юниту без неё,
// чтобы потребители могли рассчитывать: юнит есть — строка цены есть.
func (r *Repo) BackfillMissingPrices(ctx context.Context) (*Report, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO current_price (product_id, unit_id, user_id, retail_price, order_price)
		SELECT u.product_id, u.id, u.user_id, 0, 0
		FROM units u
		LEFT JOIN current_price cp ON cp.unit_id = u.id AND cp.user_id = u.user_id
		WHERE cp.id IS NULL
	`)
	if err != nil {
		return nil, err
	}
	n := int(tag.RowsAffected())
	metrics.RepairFixes.WithLabelValues("missing_prices").Add(float64(n))
	return &Report{Tool: "missing_prices", Scanned: n, Fixed: n}, nil
}
