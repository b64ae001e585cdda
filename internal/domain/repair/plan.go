package repair

// PlanPriceFix решает судьбу строк цен одного юнита, числящегося за товаром
// actualProductID. Если корректная строка уже есть — испорченные дубликаты
// просто удаляются. Если нет — самая свежая испорченная перевешивается на
// настоящего владельца, остальные удаляются. Строка с чужим product_id не
// должна пережить ремонт ни при каком раскладе.
func PlanPriceFix(unitID, actualProductID int64, rows []PriceRow) PriceFix {
	fix := PriceFix{UnitID: unitID, ActualProductID: actualProductID}

	correctExists := false
	var corrupted []PriceRow
	for _, r := range rows {
		if r.ProductID == actualProductID {
			correctExists = true
		} else {
			corrupted = append(corrupted, r)
		}
	}
	if len(corrupted) == 0 {
		return fix
	}

	if !correctExists {
		newest := corrupted[0]
		for _, r := range corrupted[1:] {
			if r.UpdatedAt.After(newest.UpdatedAt) ||
				(r.UpdatedAt.Equal(newest.UpdatedAt) && r.ID > newest.ID) {
				newest = r
			}
		}
		fix.PromoteID = newest.ID
	}
	for _, r := range corrupted {
		if r.ID != fix.PromoteID {
			fix.DeleteIDs = append(fix.DeleteIDs, r.ID)
		}
	}
	return fix
}

// ClampStock: отрицательный остаток — в ноль, остальное не трогаем.
// Угадать "правильное" значение нельзя, ноль — консервативный потолок потерь.
func ClampStock(qty float64) float64 {
	if qty < 0 {
		return 0
	}
	return qty
}
