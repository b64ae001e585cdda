package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Capabilities — какие зависимые таблицы реально есть в схеме.
// Проверяем один раз на старте вместо ловли кодов ошибок в рантайме.
type Capabilities struct {
	Purchases        bool
	Sales            bool
	ProductOfferings bool
}

func DetectCapabilities(ctx context.Context, pool *pgxpool.Pool) (Capabilities, error) {
	var caps Capabilities
	rows, err := pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name IN ('purchases','sales','product_offerings')
	`)
	if err != nil {
		return caps, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return caps, err
		}
		switch name {
		case "purchases":
			caps.Purchases = true
		case "sales":
			caps.Sales = true
		case "product_offerings":
			caps.ProductOfferings = true
		}
	}
	return caps, rows.Err()
}
