package units

import "time"

type Category string

const (
	CategoryBuying  Category = "buying"
	CategorySelling Category = "selling"
)

type Unit struct {
	ID             int64
	ProductID      int64
	UserID         int64
	Type           string // свободный ярлык: "crate", "bottle", "piece"...
	Category       Category
	OppositeUnitID *int64
	Prepackaged    bool
	CreatedAt      time.Time
}

// Edge — направленное ребро конверсии: 1 from = Rate to.
type Edge struct {
	ID         int64
	ProductID  int64
	FromUnitID int64
	ToUnitID   int64
	Rate       float64
	CreatedAt  time.Time
}
