package prices

import (
	"fmt"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/errs"
)

// WriteDecision — итог сверки пары (товар, юнит) перед записью цены.
type WriteDecision struct {
	ProductID int64
	Violation *errs.ConsistencyError // nil, если пара согласована
}

// ResolvePriceWrite решает, с каким product_id писать строку цены.
// Юнит не найден у пользователя — ошибка, записи не будет. Юнит числится
// за другим товаром — пишем настоящему владельцу, расхождение возвращается
// вызывающему для лога. При nil-ошибке ProductID всегда равен владельцу
// юнита, что бы ни пришло на входе.
func ResolvePriceWrite(d PriceData, actualProductID int64, unitFound bool) (WriteDecision, error) {
	if !unitFound {
		return WriteDecision{}, fmt.Errorf("%w: unit %d not found for user %d, price not written",
			errs.ErrNotFound, d.UnitID, d.UserID)
	}
	dec := WriteDecision{ProductID: actualProductID}
	if d.ProductID != actualProductID {
		dec.Violation = &errs.ConsistencyError{
			UnitID:         d.UnitID,
			ClaimedProduct: d.ProductID,
			ActualProduct:  actualProductID,
		}
	}
	return dec, nil
}
