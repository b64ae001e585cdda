package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — плохой ввод, до записи дело не дошло.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound — нужной строки нет.
	ErrNotFound = errors.New("not found")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// ConsistencyError — юнит числится за другим товаром, чем заявлено в записи.
type ConsistencyError struct {
	UnitID         int64
	ClaimedProduct int64
	ActualProduct  int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("unit %d belongs to product %d, not %d",
		e.UnitID, e.ActualProduct, e.ClaimedProduct)
}
