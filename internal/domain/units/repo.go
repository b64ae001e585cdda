package units

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/errs"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
)

type Repo struct {
	pool *pgxpool.Pool
	// Историческое поведение: одно ребро при добавлении к непустому товару.
	// TRUE — писать и зеркальное ребро (units.mirror_subsequent_edges).
	mirrorSubsequent bool
}

func NewRepo(pool *pgxpool.Pool, mirrorSubsequent bool) *Repo {
	return &Repo{pool: pool, mirrorSubsequent: mirrorSubsequent}
}

// MirrorSubsequentEdges — действующий режим записи ребер для добавлений
// к непустому товару.
func (r *Repo) MirrorSubsequentEdges() bool { return r.mirrorSubsequent }

// subsequentEdges: какие ребра писать при добавлении юнита к непустому
// товару. Исторически — одно новый->существующий; зеркальное под флагом.
func subsequentEdges(productID, newID, existingID int64, rate float64, mirror bool) []Edge {
	edges := []Edge{{ProductID: productID, FromUnitID: newID, ToUnitID: existingID, Rate: rate}}
	if mirror {
		edges = append(edges, Edge{ProductID: productID, FromUnitID: existingID, ToUnitID: newID, Rate: 1 / rate})
	}
	return edges
}

type PairParams struct {
	ProductID          int64
	UserID             int64
	BuyingType         string
	SellingType        string
	Rate               float64 // 1 buying = Rate selling
	BuyingPrepackaged  bool
	SellingPrepackaged bool
}

type Pair struct {
	BuyingUnitID  int64
	SellingUnitID int64
}

// AddInitialUnitPair создаёт первую пару юнитов товара и оба ребра конверсии
// одной транзакцией. Юнит без пары и без обоих ребер существовать не должен.
func (r *Repo) AddInitialUnitPair(ctx context.Context, p PairParams) (*Pair, error) {
	if p.Rate <= 0 {
		return nil, errs.Validationf("conversion rate must be > 0, got %v", p.Rate)
	}
	if strings.TrimSpace(p.BuyingType) == "" || strings.TrimSpace(p.SellingType) == "" {
		return nil, errs.Validationf("unit types must be non-empty")
	}

	var pair Pair
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var n int
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM units WHERE product_id = $1`, p.ProductID,
		).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return errs.Validationf("product %d already has %d unit(s)", p.ProductID, n)
		}

		// 1) покупочный юнит, пока без пары
		if err := tx.QueryRow(ctx, `
			INSERT INTO units (product_id, user_id, unit_type, unit_category, opposite_unit_id, prepackaged)
			VALUES ($1,$2,$3,'buying',NULL,$4)
			RETURNING id
		`, p.ProductID, p.UserID, p.BuyingType, p.BuyingPrepackaged).Scan(&pair.BuyingUnitID); err != nil {
			return err
		}

		// 2) продажный юнит сразу со ссылкой на пару
		if err := tx.QueryRow(ctx, `
			INSERT INTO units (product_id, user_id, unit_type, unit_category, opposite_unit_id, prepackaged)
			VALUES ($1,$2,$3,'selling',$4,$5)
			RETURNING id
		`, p.ProductID, p.UserID, p.SellingType, pair.BuyingUnitID, p.SellingPrepackaged).Scan(&pair.SellingUnitID); err != nil {
			return err
		}

		// 3) замыкаем пару
		if _, err := tx.Exec(ctx,
			`UPDATE units SET opposite_unit_id = $2 WHERE id = $1`,
			pair.BuyingUnitID, pair.SellingUnitID,
		); err != nil {
			return err
		}

		// 4) оба направления конверсии
		if _, err := tx.Exec(ctx, `
			INSERT INTO unit_conversion (product_id, from_unit_id, to_unit_id, conversion_rate)
			VALUES ($1,$2,$3,$4)
		`, p.ProductID, pair.BuyingUnitID, pair.SellingUnitID, p.Rate); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO unit_conversion (product_id, from_unit_id, to_unit_id, conversion_rate)
			VALUES ($1,$2,$3,$4)
		`, p.ProductID, pair.SellingUnitID, pair.BuyingUnitID, 1/p.Rate); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

type SubsequentParams struct {
	ProductID      int64
	UserID         int64
	Type           string
	Category       Category
	ExistingUnitID int64
	Rate           float64 // 1 новый = Rate существующих
	Prepackaged    bool
}

// AddSubsequentUnit добавляет юнит к товару, у которого юниты уже есть.
// Пишется одно ребро новый->существующий; зеркальное — только под флагом.
func (r *Repo) AddSubsequentUnit(ctx context.Context, p SubsequentParams) (int64, error) {
	if p.Rate <= 0 {
		return 0, errs.Validationf("conversion rate must be > 0, got %v", p.Rate)
	}
	if p.Category != CategoryBuying && p.Category != CategorySelling {
		return 0, errs.Validationf("unknown unit category %q", p.Category)
	}

	var newID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var existing int64
		err := tx.QueryRow(ctx, `
			SELECT id FROM units
			WHERE id = $1 AND product_id = $2 AND user_id = $3
		`, p.ExistingUnitID, p.ProductID, p.UserID).Scan(&existing)
		if err == pgx.ErrNoRows {
			return errs.Validationf("unit %d does not belong to product %d", p.ExistingUnitID, p.ProductID)
		}
		if err != nil {
			return err
		}

		if err := tx.QueryRow(ctx, `
			INSERT INTO units (product_id, user_id, unit_type, unit_category, opposite_unit_id, prepackaged)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, p.ProductID, p.UserID, p.Type, string(p.Category), p.ExistingUnitID, p.Prepackaged).Scan(&newID); err != nil {
			return err
		}

		for _, e := range subsequentEdges(p.ProductID, newID, p.ExistingUnitID, p.Rate, r.mirrorSubsequent) {
			if _, err := tx.Exec(ctx, `
				INSERT INTO unit_conversion (product_id, from_unit_id, to_unit_id, conversion_rate)
				VALUES ($1,$2,$3,$4)
			`, e.ProductID, e.FromUnitID, e.ToUnitID, e.Rate); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newID, nil
}

type UpdateParams struct {
	UnitID      int64
	UserID      int64
	Type        *string
	Category    *Category
	Prepackaged *bool
	Rate        *float64 // если задана и есть пара — обновляем оба направления
}

// UpdateUnit правит атрибуты юнита; ставка (если передана) пишется в оба
// направления ребра между юнитом и его парой, чтобы они оставались взаимными.
func (r *Repo) UpdateUnit(ctx context.Context, p UpdateParams) error {
	if p.Rate != nil && *p.Rate <= 0 {
		return errs.Validationf("conversion rate must be > 0, got %v", *p.Rate)
	}
	if p.Category != nil && *p.Category != CategoryBuying && *p.Category != CategorySelling {
		return errs.Validationf("unknown unit category %q", *p.Category)
	}

	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var productID int64
		var opposite *int64
		err := tx.QueryRow(ctx, `
			SELECT product_id, opposite_unit_id FROM units
			WHERE id = $1 AND user_id = $2
			FOR UPDATE
		`, p.UnitID, p.UserID).Scan(&productID, &opposite)
		if err == pgx.ErrNoRows {
			return errs.Validationf("unit %d not found for user %d", p.UnitID, p.UserID)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			UPDATE units SET
				unit_type     = COALESCE($2, unit_type),
				unit_category = COALESCE($3, unit_category),
				prepackaged   = COALESCE($4, prepackaged)
			WHERE id = $1
		`, p.UnitID, p.Type, (*string)(p.Category), p.Prepackaged); err != nil {
			return err
		}

		if p.Rate == nil || opposite == nil || *opposite == p.UnitID {
			return nil
		}
		if err := upsertEdge(ctx, tx, productID, p.UnitID, *opposite, *p.Rate); err != nil {
			return err
		}
		return upsertEdge(ctx, tx, productID, *opposite, p.UnitID, 1 / *p.Rate)
	})
}

// upsertEdge обновляет ребро, а если его нет — вставляет.
func upsertEdge(ctx context.Context, tx pgx.Tx, productID, from, to int64, rate float64) error {
	tag, err := tx.Exec(ctx, `
		UPDATE unit_conversion SET conversion_rate = $4
		WHERE product_id = $1 AND from_unit_id = $2 AND to_unit_id = $3
	`, productID, from, to, rate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO unit_conversion (product_id, from_unit_id, to_unit_id, conversion_rate)
		VALUES ($1,$2,$3,$4)
	`, productID, from, to, rate)
	return err
}

// DeleteUnit удаляет все ребра с участием юнита, затем сам юнит.
// Строки цен снимаются каскадом по unit_id на уровне схемы.
func (r *Repo) DeleteUnit(ctx context.Context, unitID, userID int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM units WHERE id = $1 AND user_id = $2`, unitID, userID,
		).Scan(&id)
		if err == pgx.ErrNoRows {
			return errs.Validationf("unit %d not found for user %d", unitID, userID)
		}
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM unit_conversion
			WHERE from_unit_id = $1 OR to_unit_id = $1
		`, unitID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE units SET opposite_unit_id = NULL WHERE opposite_unit_id = $1`, unitID,
		); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `DELETE FROM units WHERE id = $1`, unitID)
		return err
	})
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Unit, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, product_id, user_id, unit_type, unit_category, opposite_unit_id, prepackaged, created_at
		FROM units WHERE id = $1
	`, id)
	var u Unit
	if err := row.Scan(&u.ID, &u.ProductID, &u.UserID, &u.Type, &u.Category, &u.OppositeUnitID, &u.Prepackaged, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListByProduct(ctx context.Context, productID int64) ([]Unit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, user_id, unit_type, unit_category, opposite_unit_id, prepackaged, created_at
		FROM units
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.ProductID, &u.UserID, &u.Type, &u.Category, &u.OppositeUnitID, &u.Prepackaged, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) CountByProduct(ctx context.Context, productID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM units WHERE product_id = $1`, productID,
	).Scan(&n)
	return n, err
}

func (r *Repo) EdgesByProduct(ctx context.Context, productID int64) ([]Edge, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, from_unit_id, to_unit_id, conversion_rate, created_at
		FROM unit_conversion
		WHERE product_id = $1
		ORDER BY id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Edge
	for rows.Next() {
		var e Edge
		if err := rows.Scan(&e.ID, &e.ProductID, &e.FromUnitID, &e.ToUnitID, &e.Rate, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
