package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sanathpai/ZambiaShoppe-sub001/internal/app"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/config"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/domain/repair"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/db"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/infra/logger"
	"github.com/sanathpai/ZambiaShoppe-sub001/internal/report"

	"github.com/subosito/gotenv"
)

// shopctl — административные операции над данными: предпросмотр и слияние
// дубликатов товаров, пакетные ремонты инвариантов.
//
//	shopctl [-config path] [-out report.xlsx] <command>
//
// Команды:
//
//	dedup-preview     показать, что именно сольётся (без записи)
//	dedup-apply       слить дубликаты
//	repair-orphans    удалить юниты без товара (добавьте -apply)
//	repair-prices     починить порченые строки цен и поставить ограничение
//	repair-stock      обнулить отрицательные остатки
//	repair-backfill   завести нулевые цены юнитам без строки цены
//	repair-all        все ремонты по порядку
func main() {
	_ = gotenv.Load()

	cfgPath := flag.String("config", "config/example.yaml", "путь к конфигу")
	outPath := flag.String("out", "", "выгрузить отчёт в xlsx")
	apply := flag.Bool("apply", false, "для repair-orphans: реально удалять")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cmd := flag.Arg(0)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.App.Env, "shopctl")

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	caps, err := db.DetectCapabilities(ctx, pool)
	if err != nil {
		log.Error("schema capability check failed", "err", err)
		os.Exit(1)
	}

	a := app.New(pool, caps, cfg, log)
	consolidator := a.Dedup
	repairs := a.Repair

	switch cmd {
	case "dedup-preview":
		items, err := consolidator.Preview(ctx)
		if err != nil {
			log.Error("preview failed", "err", err)
			os.Exit(1)
		}
		for _, it := range items {
			log.Info("would merge",
				"duplicate_id", it.DuplicateID, "canonical_id", it.CanonicalID,
				"units", it.Counts.Units, "prices", it.Counts.Prices,
				"purchases", it.Counts.Purchases, "sales", it.Counts.Sales,
				"inventory_action", it.Counts.InventoryAction)
		}
		log.Info("preview complete", "duplicates", len(items))
		if *outPath != "" {
			data, err := report.ConsolidationPreviewXLSX(items)
			if err != nil {
				log.Error("report build failed", "err", err)
				os.Exit(1)
			}
			writeOut(log, *outPath, data)
		}

	case "dedup-apply":
		sum, err := consolidator.Consolidate(ctx)
		if err != nil {
			log.Error("consolidation failed", "err", err)
			os.Exit(1)
		}
		log.Info("consolidation complete",
			"groups", sum.Groups, "merged", sum.Merged, "failed", len(sum.Failures))
		for _, f := range sum.Failures {
			log.Error("duplicate not merged", "product_id", f.ProductID, "err", f.Err)
		}

	case "repair-orphans":
		rep, err := repairs.RepairOrphanUnits(ctx, *apply)
		finishRepairs(log, *outPath, err, rep)

	case "repair-prices":
		rep, err := repairs.RepairPriceCorruption(ctx)
		if err == nil {
			err = repairs.EnsurePriceUnitConstraint(ctx)
		}
		finishRepairs(log, *outPath, err, rep)

	case "repair-stock":
		rep, err := repairs.ClampNegativeInventory(ctx)
		finishRepairs(log, *outPath, err, rep)

	case "repair-backfill":
		rep, err := repairs.BackfillMissingPrices(ctx)
		finishRepairs(log, *outPath, err, rep)

	case "repair-all":
		var reps []*repair.Report
		steps := []func(context.Context) (*repair.Report, error){
			func(ctx context.Context) (*repair.Report, error) { return repairs.RepairOrphanUnits(ctx, true) },
			repairs.RepairPriceCorruption,
			repairs.ClampNegativeInventory,
			repairs.BackfillMissingPrices,
		}
		for _, step := range steps {
			rep, err := step(ctx)
			if err != nil {
				log.Error("repair step failed", "err", err)
				os.Exit(1)
			}
			logReport(log, rep)
			reps = append(reps, rep)
		}
		if err := repairs.EnsurePriceUnitConstraint(ctx); err != nil {
			log.Error("constraint install failed", "err", err)
			os.Exit(1)
		}
		if *outPath != "" {
			data, err := report.RepairSummaryXLSX(reps)
			if err != nil {
				log.Error("report build failed", "err", err)
				os.Exit(1)
			}
			writeOut(log, *outPath, data)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
}

func finishRepairs(log *slog.Logger, outPath string, err error, rep *repair.Report) {
	if err != nil {
		log.Error("repair failed", "err", err)
		os.Exit(1)
	}
	logReport(log, rep)
	if outPath != "" {
		data, err := report.RepairSummaryXLSX([]*repair.Report{rep})
		if err != nil {
			log.Error("report build failed", "err", err)
			os.Exit(1)
		}
		writeOut(log, outPath, data)
	}
}

func logReport(log *slog.Logger, rep *repair.Report) {
	log.Info("repair complete",
		"tool", rep.Tool, "scanned", rep.Scanned,
		"fixed", rep.Fixed, "deleted", rep.Deleted, "failures", len(rep.Failures))
}

func writeOut(log *slog.Logger, path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("report write failed", "path", path, "err", err)
		os.Exit(1)
	}
	log.Info("report written", "path", path)
}
