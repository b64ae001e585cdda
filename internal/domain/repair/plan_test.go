package repair

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlanPriceFix(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		rows        []PriceRow
		wantPromote int64
		wantDelete  []int64
	}{
		{
			// Юнит 77 принадлежит товару 5, но есть строка с товаром 9.
			// Корректная строка уже существует — порченую удаляем.
			name: "correct row exists, corrupted deleted",
			rows: []PriceRow{
				{ID: 100, ProductID: 5, UpdatedAt: base},
				{ID: 101, ProductID: 9, UpdatedAt: base.Add(time.Hour)},
			},
			wantPromote: 0,
			wantDelete:  []int64{101},
		},
		{
			// Корректной строки нет — самая свежая порченая перевешивается.
			name: "no correct row, newest promoted, rest deleted",
			rows: []PriceRow{
				{ID: 101, ProductID: 9, UpdatedAt: base},
				{ID: 102, ProductID: 11, UpdatedAt: base.Add(2 * time.Hour)},
				{ID: 103, ProductID: 9, UpdatedAt: base.Add(time.Hour)},
			},
			wantPromote: 102,
			wantDelete:  []int64{101, 103},
		},
		{
			name: "equal timestamps, higher id promoted",
			rows: []PriceRow{
				{ID: 101, ProductID: 9, UpdatedAt: base},
				{ID: 102, ProductID: 9, UpdatedAt: base},
			},
			wantPromote: 102,
			wantDelete:  []int64{101},
		},
		{
			name: "nothing corrupted, nothing to do",
			rows: []PriceRow{
				{ID: 100, ProductID: 5, UpdatedAt: base},
			},
			wantPromote: 0,
			wantDelete:  nil,
		},
		{
			name:        "no rows at all",
			rows:        nil,
			wantPromote: 0,
			wantDelete:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fix := PlanPriceFix(77, 5, tt.rows)
			assert.Equal(t, tt.wantPromote, fix.PromoteID)
			assert.ElementsMatch(t, tt.wantDelete, fix.DeleteIDs)

			// Ни одна строка с чужим product_id не остаётся нетронутой.
			for _, r := range tt.rows {
				if r.ProductID == 5 {
					continue
				}
				handled := fix.PromoteID == r.ID
				for _, id := range fix.DeleteIDs {
					if id == r.ID {
						handled = true
					}
				}
				assert.True(t, handled, "corrupted row %d left standing", r.ID)
			}
		})
	}
}

func TestClampStock(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, ClampStock(-7))
	assert.Equal(t, 0.0, ClampStock(0))
	assert.Equal(t, 12.5, ClampStock(12.5))
}
