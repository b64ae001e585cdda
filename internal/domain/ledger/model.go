package ledger

import "time"

type Purchase struct {
	ID         int64
	ProductID  int64
	UnitID     int64
	UserID     int64
	Quantity   float64
	OrderPrice float64
	CreatedAt  time.Time
}

type Sale struct {
	ID          int64
	ProductID   int64
	UnitID      int64
	UserID      int64
	Quantity    float64
	RetailPrice float64
	CreatedAt   time.Time
}

type Offering struct {
	ID        int64
	ProductID int64
	UserID    int64
	ShopName  string
	CreatedAt time.Time
}

// Totals — счётчики истории по товару; после консолидации сумма по группе
// дубликатов должна сойтись на каноническом товаре один в один.
type Totals struct {
	Purchases int64
	Sales     int64
	Offerings int64
}
