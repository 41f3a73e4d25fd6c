package report

import (
	"fmt"
	"io"

	"tariff-compare/internal/model"
)

// WriteComparisonTable renders the tariff comparison, cheapest first,
// with the dynamic breakdown (if any) in the same table.
func WriteComparisonTable(w io.Writer, static []model.CostBreakdown, dynamic *model.CostBreakdown) {
	fmt.Fprintf(w, "%-9s %-12s %-10s %-11s %-12s %-10s %-12s\n",
		"tariff", "energy-net", "fixed-net", "surcharges", "gross-total", "kwh", "vs-cheapest")

	rows := make([]model.CostBreakdown, 0, len(static)+1)
	rows = append(rows, static...)
	if dynamic != nil {
		d := *dynamic
		if len(static) > 0 {
			d.DeltaToCheapest = d.GrossTotal - static[0].GrossTotal
		}
		rows = append(rows, d)
	}

	for _, b := range rows {
		fmt.Fprintf(w, "%-9s %-12.2f %-10.2f %-11.2f %-12.2f %-10.2f %+-12.2f\n",
			b.Tariff,
			b.EnergyCostNet,
			b.FixedChargesNet,
			b.SurchargesNet,
			b.GrossTotal,
			b.TotalKWh,
			b.DeltaToCheapest,
		)
	}

	if dynamic != nil && dynamic.Dynamic != nil {
		s := dynamic.Dynamic
		fmt.Fprintf(w, "\ndynamic source price: mean=%.4f min=%.4f max=%.4f (%d matched hours)\n",
			s.MeanSourcePrice, s.MinSourcePrice, s.MaxSourcePrice, s.MatchedHours)
	}
}
