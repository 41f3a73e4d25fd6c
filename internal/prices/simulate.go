package prices

import (
	"hash/fnv"
	"time"

	"tariff-compare/internal/model"
)

// SimulatedSource synthesizes a full month of prices from the typical shape
// of the Polish day-ahead market. It exists as the tail of the chain so the
// dynamic tariff always has an input series, and it never fails.
//
// Base levels and variances are in PLN/MWh, drawn from 2024 market history:
// cheap nights, a morning and an evening peak, and weekend prices scaled to
// 70% of working-day levels. The jitter is seeded from the timestamp itself,
// so repeated runs for the same month produce identical series.
type SimulatedSource struct{}

func NewSimulatedSource() *SimulatedSource { return &SimulatedSource{} }

func (s *SimulatedSource) Name() string { return "simulated" }

func (s *SimulatedSource) Fetch(year int, month time.Month) ([]model.PricePoint, error) {
	loc := localTZ()
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month, daysIn(year, month), 23, 0, 0, 0, time.UTC)

	var points []model.PricePoint
	for ts := start; !ts.After(end); ts = ts.Add(time.Hour) {
		points = append(points, model.PricePoint{
			HourUTC:  ts,
			PriceKWh: simulatePrice(ts.In(loc)),
		})
	}
	return points, nil
}

func simulatePrice(local time.Time) float64 {
	var base, variance float64
	switch hour := local.Hour(); {
	case hour < 6: // night
		base, variance = 300, 60
	case hour < 7: // early morning
		base, variance = 450, 90
	case hour < 10: // morning peak
		base, variance = 700, 120
	case hour < 15: // midday
		base, variance = 500, 80
	case hour < 17: // afternoon
		base, variance = 550, 90
	case hour < 21: // evening peak
		base, variance = 750, 130
	case hour < 22: // late evening
		base, variance = 600, 100
	default: // 22-24, night
		base, variance = 350, 70
	}

	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		base *= 0.70
	}

	jitter := (float64(timestampHash(local)%100) - 50) / 100 * variance
	priceMWh := base + jitter

	return priceMWh / 1000.0
}

// timestampHash gives a stable pseudo-random value per hour.
func timestampHash(local time.Time) uint64 {
	h := fnv.New64a()
	h.Write([]byte(local.Format("2006-01-02 15:04:05 -0700")))
	return h.Sum64()
}
