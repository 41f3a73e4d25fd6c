// Package cost joins the hourly consumption series with tariff pricing and
// produces per-tariff monthly cost breakdowns.
package cost

import (
	"fmt"
	"sort"
	"time"

	"tariff-compare/internal/config"
	"tariff-compare/internal/model"
	"tariff-compare/internal/prices"
	"tariff-compare/internal/tariff"
)

// Engine computes cost breakdowns. Zone rules run on local wall-clock time,
// so the engine converts the UTC consumption hours before classifying.
type Engine struct {
	Classifier *tariff.Classifier
	Local      *time.Location
}

func New(classifier *tariff.Classifier) *Engine {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		loc = time.FixedZone("CET", 3600)
	}
	return &Engine{Classifier: classifier, Local: loc}
}

// ComputeStatic prices the consumption series under every static tariff.
// Results are ordered ascending by gross total and each carries its
// gross-total delta from the cheapest.
func (e *Engine) ComputeStatic(hourly []model.HourlyConsumption, cfg *config.Config) ([]model.CostBreakdown, error) {
	totalKWh := model.TotalKWh(hourly)
	fixed := cfg.FixedCharges.Total()
	surcharges := totalKWh * cfg.Surcharges.PerKWh()

	results := make([]model.CostBreakdown, 0, len(model.StaticTariffs))
	for _, id := range model.StaticTariffs {
		zonePrices, ok := cfg.Tariffs[id]
		if !ok {
			return nil, fmt.Errorf("no price table for tariff %s", id)
		}

		energy := 0.0
		usage := make(map[model.Zone]model.ZoneUsage)
		for _, h := range hourly {
			zone, err := e.Classifier.Classify(h.HourUTC.In(e.Local), id)
			if err != nil {
				return nil, err
			}
			price, ok := zonePrices[zone]
			if !ok {
				return nil, fmt.Errorf("tariff %s has no price for zone %q", id, zone)
			}
			energy += h.KWh * price

			u := usage[zone]
			u.Hours++
			u.KWh += h.KWh
			usage[zone] = u
		}

		net := energy + fixed + surcharges
		tax := net * cfg.VATRate
		results = append(results, model.CostBreakdown{
			Tariff:          id,
			EnergyCostNet:   energy,
			FixedChargesNet: fixed,
			SurchargesNet:   surcharges,
			NetTotal:        net,
			Tax:             tax,
			GrossTotal:      net + tax,
			TotalKWh:        totalKWh,
			ZoneUsage:       usage,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].GrossTotal < results[j].GrossTotal
	})
	if len(results) > 0 {
		cheapest := results[0].GrossTotal
		for i := range results {
			results[i].DeltaToCheapest = results[i].GrossTotal - cheapest
		}
	}
	return results, nil
}

// ComputeDynamic prices the consumption series under the market-indexed
// offer. Consumption hours with no matching price point contribute no energy
// cost; a partial-coverage month still yields a best-effort total. A nil
// breakdown means no price series was available, which is distinct from a
// zero-cost month.
func (e *Engine) ComputeDynamic(hourly []model.HourlyConsumption, points []model.PricePoint, cfg *config.Config) *model.CostBreakdown {
	if len(points) == 0 {
		return nil
	}

	priceByHour := make(map[time.Time]float64, len(points))
	for _, pt := range points {
		priceByHour[pt.HourUTC] = pt.PriceKWh
	}

	// Per-kWh surcharges and distribution fold into the hourly unit price,
	// so SurchargesNet stays zero on the dynamic breakdown.
	perKWh := cfg.Dynamic.Margin + cfg.Dynamic.BlendedDistribution() + cfg.Surcharges.PerKWh()

	energy := 0.0
	var matched []model.PricePoint
	for _, h := range hourly {
		source, ok := priceByHour[h.HourUTC]
		if !ok {
			continue
		}
		energy += h.KWh * (source + perKWh)
		matched = append(matched, model.PricePoint{HourUTC: h.HourUTC, PriceKWh: source})
	}

	fixed := cfg.Dynamic.FixedCharge + cfg.FixedCharges.NonCommercial()
	net := energy + fixed
	tax := net * cfg.VATRate

	stats := prices.ComputeStats(matched)
	return &model.CostBreakdown{
		Tariff:          model.TariffDynamic,
		EnergyCostNet:   energy,
		FixedChargesNet: fixed,
		SurchargesNet:   0,
		NetTotal:        net,
		Tax:             tax,
		GrossTotal:      net + tax,
		TotalKWh:        model.TotalKWh(hourly),
		Dynamic: &model.DynamicStats{
			MeanSourcePrice: stats.Mean,
			MinSourcePrice:  stats.Min,
			MaxSourcePrice:  stats.Max,
			MatchedHours:    stats.Count,
		},
	}
}
