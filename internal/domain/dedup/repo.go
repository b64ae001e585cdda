package dedup

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/products"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/metrics"
)

// Repo — консолидация дубликатов товаров. Дубликаты копятся от ручного
// ввода; слияние переводит все зависимые строки на канонический товар и
// удаляет опустевшую строку дубликата. История не теряется и не двоится.
type Repo struct {
	pool *pgxpool.Pool
	caps db.Capabilities
	log  *slog.Logger
}

func NewRepo(pool *pgxpool.Pool, caps db.Capabilities, log *slog.Logger) *Repo {
	return &Repo{pool: pool, caps: caps, log: log}
}

// DetectGroups собирает все товары с их инвентарными строками и группирует
// дубликаты в памяти (нормализация ключа — в пакете products).
func (r *Repo) DetectGroups(ctx context.Context) ([]Group, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, product_name, variety, brand, size, created_at
		FROM products
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prods []products.Product
	for rows.Next() {
		var p products.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Variety, &p.Brand, &p.Size, &p.CreatedAt); err != nil {
			return nil, err
		}
		prods = append(prods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	invs, err := r.inventoryMembers(ctx)
	if err != nil {
		return nil, err
	}
	return BuildGroups(prods, invs), nil
}

// inventoryMembers: по товару берём самую свежую инвентарную строку
// (наибольший id) и её запас.
func (r *Repo) inventoryMembers(ctx context.Context) (map[int64]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT ON (product_id) product_id, id, current_stock
		FROM inventories
		ORDER BY product_id, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]Member)
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ProductID, &m.InventoryID, &m.Stock); err != nil {
			return nil, err
		}
		m.HasInventory = true
		out[m.ProductID] = m
	}
	return out, rows.Err()
}

// Preview — та же детекция и тот же выбор канонического, но без записи:
// отчёт о том, что именно уедет с каждого дубликата.
func (r *Repo) Preview(ctx context.Context) ([]PreviewItem, error) {
	groups, err := r.DetectGroups(ctx)
	if err != nil {
		return nil, err
	}

	var items []PreviewItem
	for _, g := range groups {
		canonical := g.Canonical
		for _, dup := range g.Duplicates {
			counts, err := r.countDependents(ctx, dup.ProductID)
			if err != nil {
				return nil, err
			}
			counts.InventoryAction = InventoryAction(canonical, dup)
			if counts.InventoryAction == "repoint" {
				// после перевешивания у канонического строка появится
				canonical.HasInventory = true
			}
			items = append(items, PreviewItem{
				Key:         g.Key,
				CanonicalID: canonical.ProductID,
				DuplicateID: dup.ProductID,
				Counts:      counts,
			})
		}
	}
	return items, nil
}

func (r *Repo) countDependents(ctx context.Context, productID int64) (MoveCounts, error) {
	var c MoveCounts
	count := func(table string, dst *int64) error {
		return r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM `+table+` WHERE product_id = $1`, productID,
		).Scan(dst)
	}
	if err := count("units", &c.Units); err != nil {
		return c, err
	}
	if err := count("unit_conversion", &c.Conversions); err != nil {
		return c, err
	}
	if err := count("current_price", &c.Prices); err != nil {
		return c, err
	}
	if r.caps.Purchases {
		if err := count("purchases", &c.Purchases); err != nil {
			return c, err
		}
	}
	if r.caps.Sales {
		if err := count("sales", &c.Sales); err != nil {
			return c, err
		}
	}
	if r.caps.ProductOfferings {
		if err := count("product_offerings", &c.ProductOfferings); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Consolidate сливает все найденные группы. Один дубликат — одна транзакция:
// сбой отбрасывает только его, остальные обрабатываются дальше.
func (r *Repo) Consolidate(ctx context.Context) (*Summary, error) {
	groups, err := r.DetectGroups(ctx)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Groups: len(groups)}
	for _, g := range groups {
		canonical := g.Canonical
		for _, dup := range g.Duplicates {
			action := InventoryAction(canonical, dup)
			if err := r.mergeOne(ctx, canonical.ProductID, dup.ProductID, action); err != nil {
				r.log.Error("merge failed, duplicate left for retry",
					"duplicate_id", dup.ProductID, "canonical_id", canonical.ProductID, "err", err)
				sum.Failures = append(sum.Failures, FailedMerge{ProductID: dup.ProductID, Err: err})
				continue
			}
			if action == "repoint" {
				canonical.HasInventory = true
			}
			sum.Merged++
			metrics.DuplicatesMerged.Inc()
			r.log.Info("duplicate merged",
				"duplicate_id", dup.ProductID, "canonical_id", canonical.ProductID,
				"inventory_action", action, "stock_strategy", string(StrategyDiscardNoncanonicalStock))
		}
	}
	return sum, nil
}

// mergeOne переводит все зависимые строки дубликата на канонический товар
// и удаляет опустевший дубликат. Всё в одной транзакции.
func (r *Repo) mergeOne(ctx context.Context, canonicalID, duplicateID int64, inventoryAction string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		repoint := func(table string) error {
			_, err := tx.Exec(ctx,
				`UPDATE `+table+` SET product_id = $1 WHERE product_id = $2`,
				canonicalID, duplicateID)
			return err
		}

		if err := repoint("units"); err != nil {
			return err
		}
		if err := repoint("unit_conversion"); err != nil {
			return err
		}
		if err := repoint("current_price"); err != nil {
			return err
		}
		if r.caps.Purchases {
			if err := repoint("purchases"); err != nil {
				return err
			}
		}
		if r.caps.Sales {
			if err := repoint("sales"); err != nil {
				return err
			}
		}
		if r.caps.ProductOfferings {
			if err := repoint("product_offerings"); err != nil {
				return err
			}
		}

		switch inventoryAction {
		case "delete":
			// discard_noncanonical_stock: строка канонического не трогается
			if _, err := tx.Exec(ctx,
				`DELETE FROM inventories WHERE product_id = $1`, duplicateID,
			); err != nil {
				return err
			}
		case "repoint":
			if _, err := tx.Exec(ctx,
				`UPDATE inventories SET product_id = $1 WHERE product_id = $2`,
				canonicalID, duplicateID,
			); err != nil {
				return err
			}
		}

		_, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, duplicateID)
		return err
	})
}
