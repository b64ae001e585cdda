package products

import (
	"strings"
	"time"
)

type Product struct {
	ID        int64
	UserID    int64
	Name      string
	Variety   string
	Brand     string
	Size      string
	CreatedAt time.Time
}

// Key — нормализованный кортеж для поиска дубликатов:
// регистр и лишние пробелы не должны плодить "разные" товары.
type Key struct {
	UserID  int64
	Name    string
	Variety string
	Brand   string
	Size    string
}

func (p Product) NormalizedKey() Key {
	return Key{
		UserID:  p.UserID,
		Name:    normalize(p.Name),
		Variety: normalize(p.Variety),
		Brand:   normalize(p.Brand),
		Size:    normalize(p.Size),
	}
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
