package inventory

import "time"

// Stock — текущий остаток по (товар, юнит, пользователь).
// Отрицательные значения допускаются: продажи без прихода случаются,
// для чистки есть ремонт ClampNegativeInventory.
type Stock struct {
	ID           int64
	ProductID    int64
	UnitID       *int64
	UserID       int64
	CurrentStock float64
	CreatedAt    time.Time
}
