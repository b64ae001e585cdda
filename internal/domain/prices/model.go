package prices

import "time"

// CurrentPrice — кэш "текущей цены" по ключу (товар, юнит, пользователь).
type CurrentPrice struct {
	ID          int64
	ProductID   int64
	UnitID      int64
	UserID      int64
	RetailPrice float64
	OrderPrice  float64
	UpdatedAt   time.Time
}

type PriceData struct {
	ProductID   int64
	UnitID      int64
	UserID      int64
	RetailPrice float64
	OrderPrice  float64
}

// Suggestion — юнит товара с ценами из кэша либо нулями, если строки ещё нет.
type Suggestion struct {
	UnitID      int64
	UnitType    string
	Category    string
	RetailPrice float64
	OrderPrice  float64
	HasPrice    bool
}
