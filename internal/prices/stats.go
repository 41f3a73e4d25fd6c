package prices

import (
	"math"
	"time"

	"tariff-compare/internal/model"
)

// SeriesStats summarizes a price series.
type SeriesStats struct {
	Count int       `json:"count"`
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ComputeStats computes the price distribution of a series. Callers pass
// either a full acquired month or the matched subset joined against
// consumption.
func ComputeStats(points []model.PricePoint) SeriesStats {
	s := SeriesStats{}
	if len(points) == 0 {
		return s
	}
	s.Count = len(points)
	s.Start = points[0].HourUTC
	s.End = points[len(points)-1].HourUTC

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	for _, pt := range points {
		sum += pt.PriceKWh
		if pt.PriceKWh < minv {
			minv = pt.PriceKWh
		}
		if pt.PriceKWh > maxv {
			maxv = pt.PriceKWh
		}
	}
	s.Mean = sum / float64(len(points))
	s.Min = minv
	s.Max = maxv
	return s
}
