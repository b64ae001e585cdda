package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedKey(t *testing.T) {
	t.Parallel()

	a := Product{UserID: 1, Name: "  Soda ", Variety: "COLA", Brand: "Coca  Cola", Size: "500ml"}
	b := Product{UserID: 1, Name: "soda", Variety: "cola", Brand: "coca cola", Size: " 500ML "}
	c := Product{UserID: 2, Name: "soda", Variety: "cola", Brand: "coca cola", Size: "500ml"}

	assert.Equal(t, a.NormalizedKey(), b.NormalizedKey())
	// тот же кортеж у другого пользователя — не дубликат
	assert.NotEqual(t, a.NormalizedKey(), c.NormalizedKey())

	assert.Equal(t, Key{
		UserID:  1,
		Name:    "soda",
		Variety: "cola",
		Brand:   "coca cola",
		Size:    "500ml",
	}, a.NormalizedKey())
}
