package app

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/config"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/dedup"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/inventory"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/ledger"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/prices"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/products"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/repair"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/units"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
)

// App — собранный набор репозиториев подсистемы. Единственное место, где
// конфиг превращается в поведение: units.mirror_subsequent_edges доезжает
// до репозитория юнитов только здесь.
type App struct {
	Products  *products.Repo
	Units     *units.Repo
	Prices    *prices.Repo
	Validator *prices.Validator
	Inventory *inventory.Repo
	Ledger    *ledger.Repo
	Dedup     *dedup.Repo
	Repair    *repair.Repo
}

func New(pool *pgxpool.Pool, caps db.Capabilities, cfg config.Config, log *slog.Logger) *App {
	priceRepo := prices.NewRepo(pool)
	return &App{
		Products:  products.NewRepo(pool),
		Units:     units.NewRepo(pool, cfg.Units.MirrorSubsequentEdges),
		Prices:    priceRepo,
		Validator: prices.NewValidator(pool, priceRepo, log),
		Inventory: inventory.NewRepo(pool),
		Ledger:    ledger.NewRepo(pool, caps),
		Dedup:     dedup.NewRepo(pool, caps, log),
		Repair:    repair.NewRepo(pool, log),
	}
}
