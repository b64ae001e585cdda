package dedup

import "github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/products"

// StockStrategy — что делать с запасом не-канонических дубликатов.
type StockStrategy string

// Единственная поддерживаемая стратегия: запас дубликата выбрасывается,
// строка канонического товара остаётся как есть. Суммирование сознательно
// не делается — остатки дубликатов исторически мусорные.
const StrategyDiscardNoncanonicalStock StockStrategy = "discard_noncanonical_stock"

// Member — товар-участник группы дубликатов вместе со сведениями об
// инвентарной строке, по которым выбирается канонический.
type Member struct {
	ProductID    int64
	InventoryID  int64 // 0, если инвентарной строки нет
	Stock        float64
	HasInventory bool
}

// Group — товары одного пользователя с одинаковым нормализованным кортежем.
type Group struct {
	Key        products.Key
	Canonical  Member
	Duplicates []Member // все остальные, в порядке обхода
}

// MoveCounts — сколько зависимых строк уедет с одного дубликата.
type MoveCounts struct {
	Units            int64
	Conversions      int64
	Prices           int64
	Purchases        int64
	Sales            int64
	ProductOfferings int64
	InventoryAction  string // "delete" | "repoint" | "none"
}

// PreviewItem — один дубликат из отчёта предпросмотра.
type PreviewItem struct {
	Key         products.Key
	CanonicalID int64
	DuplicateID int64
	Counts      MoveCounts
}

type FailedMerge struct {
	ProductID int64
	Err       error
}

type Summary struct {
	Groups   int
	Merged   int
	Failures []FailedMerge
}
