package prices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/errs"
)

func TestResolvePriceWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      PriceData
		actual    int64
		unitFound bool
		wantErr   bool
		corrected bool
	}{
		{
			name:      "consistent pair passes through",
			data:      PriceData{ProductID: 5, UnitID: 77, UserID: 3},
			actual:    5,
			unitFound: true,
		},
		{
			// юнит 77 на самом деле у товара 5, заявлен товар 9
			name:      "mismatched pair rewritten to the unit's owner",
			data:      PriceData{ProductID: 9, UnitID: 77, UserID: 3},
			actual:    5,
			unitFound: true,
			corrected: true,
		},
		{
			name:      "unknown unit fails, nothing to write",
			data:      PriceData{ProductID: 5, UnitID: 404, UserID: 3},
			unitFound: false,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec, err := ResolvePriceWrite(tt.data, tt.actual, tt.unitFound)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrNotFound)
				assert.ErrorContains(t, err, "price not written")
				return
			}
			require.NoError(t, err)

			// строка цены всегда уходит настоящему владельцу юнита
			assert.Equal(t, tt.actual, dec.ProductID)

			if !tt.corrected {
				assert.Nil(t, dec.Violation)
				return
			}
			require.NotNil(t, dec.Violation)
			assert.Equal(t, tt.data.UnitID, dec.Violation.UnitID)
			assert.Equal(t, tt.data.ProductID, dec.Violation.ClaimedProduct)
			assert.Equal(t, tt.actual, dec.Violation.ActualProduct)
		})
	}
}
