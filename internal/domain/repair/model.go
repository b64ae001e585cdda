package repair

import "time"

// OrphanUnit — юнит, чей товар уже удалён. Терять тут нечего: владелец
// исчез, строка только мешает.
type OrphanUnit struct {
	UnitID    int64
	ProductID int64
	UserID    int64
	UnitType  string
}

// PriceRow — строка кэша цен при разборе порчи по одному юниту.
type PriceRow struct {
	ID        int64
	ProductID int64
	UpdatedAt time.Time
}

// PriceFix — решение по одному испорченному юниту: какую строку
// перевесить на настоящего владельца (0 — никакую) и какие удалить.
type PriceFix struct {
	UnitID          int64
	ActualProductID int64
	PromoteID       int64
	DeleteIDs       []int64
}

// Report — итог прогона одного инструмента.
type Report struct {
	Tool     string
	Scanned  int
	Fixed    int
	Deleted  int
	Failures []error
}
