package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// PriceAutocorrects — сколько раз безопасная запись цены поправила product_id.
	PriceAutocorrects = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "price_writes_autocorrected_total",
			Help: "Current price writes whose product_id was corrected to the unit's owner",
		},
	)

	// DuplicatesMerged — слитые дубликаты товаров (по одному на не-канонический товар).
	DuplicatesMerged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "product_duplicates_merged_total",
			Help: "Duplicate product rows merged into their canonical product",
		},
	)

	// RepairFixes — исправления по инструментам ремонта, с меткой инструмента.
	RepairFixes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repair_fixes_total",
			Help: "Rows fixed or removed by repair tools",
		},
		[]string{"tool"},
	)
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(PriceAutocorrects, DuplicatesMerged, RepairFixes)
}
