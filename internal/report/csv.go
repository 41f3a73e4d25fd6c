package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"tariff-compare/internal/model"
)

// WriteHourlyCSV exports the hourly consumption series.
func WriteHourlyCSV(path string, hourly []model.HourlyConsumption) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"hour_utc", "kwh"}); err != nil {
		return err
	}
	for _, h := range hourly {
		row := []string{
			fmtTime(h.HourUTC),
			fmtFloat(h.KWh),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteBreakdownCSV exports the per-tariff cost breakdowns.
func WriteBreakdownCSV(path string, breakdowns []model.CostBreakdown) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"tariff",
		"energy_cost_net",
		"fixed_charges_net",
		"surcharges_net",
		"net_total",
		"tax",
		"gross_total",
		"total_kwh",
		"delta_to_cheapest",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, b := range breakdowns {
		row := []string{
			string(b.Tariff),
			fmtFloat(b.EnergyCostNet),
			fmtFloat(b.FixedChargesNet),
			fmtFloat(b.SurchargesNet),
			fmtFloat(b.NetTotal),
			fmtFloat(b.Tax),
			fmtFloat(b.GrossTotal),
			fmtFloat(b.TotalKWh),
			fmtFloat(b.DeltaToCheapest),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
