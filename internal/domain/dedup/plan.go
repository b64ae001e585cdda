package dedup

import (
	"sort"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/products"
)

// BuildGroups группирует товары по нормализованному кортежу и оставляет
// только группы из двух и более участников. Внутри группы канонический
// выбирается детерминированно, независимо от порядка на входе.
func BuildGroups(prods []products.Product, inventories map[int64]Member) []Group {
	byKey := make(map[products.Key][]Member)
	var order []products.Key
	for _, p := range prods {
		k := p.NormalizedKey()
		m, ok := inventories[p.ID]
		if !ok {
			m = Member{ProductID: p.ID}
		}
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], m)
	}

	var out []Group
	for _, k := range order {
		members := byKey[k]
		if len(members) < 2 {
			continue
		}
		canonical := ChooseCanonical(members)
		g := Group{Key: k, Canonical: canonical}
		for _, m := range members {
			if m.ProductID != canonical.ProductID {
				g.Duplicates = append(g.Duplicates, m)
			}
		}
		out = append(out, g)
	}
	return out
}

// ChooseCanonical: выше инвентарный id (свежее создан) — каноничнее;
// при равенстве — больший запас, затем больший id товара.
func ChooseCanonical(members []Member) Member {
	best := members[0]
	for _, m := range members[1:] {
		if lessCanonical(best, m) {
			best = m
		}
	}
	return best
}

func lessCanonical(a, b Member) bool {
	if a.InventoryID != b.InventoryID {
		return a.InventoryID < b.InventoryID
	}
	if a.Stock != b.Stock {
		return a.Stock < b.Stock
	}
	return a.ProductID < b.ProductID
}

// SortMembers — стабильный порядок "от самого канонического" для отчётов.
func SortMembers(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)
	sort.Slice(out, func(i, j int) bool { return lessCanonical(out[j], out[i]) })
	return out
}

// InventoryAction: у дубликата нет строки — делать нечего; строка есть у
// обоих — дубликатную удаляем (discard_noncanonical_stock); строка только
// у дубликата — перевешиваем на канонический товар.
func InventoryAction(canonical, duplicate Member) string {
	switch {
	case !duplicate.HasInventory:
		return "none"
	case canonical.HasInventory:
		return "delete"
	default:
		return "repoint"
	}
}
