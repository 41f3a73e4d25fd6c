package model

import "time"

// HourlyConsumption is the energy consumed during one clock hour.
// The series is sparse: hours with no valid counter delta are absent.
type HourlyConsumption struct {
	HourUTC time.Time `json:"hour_utc"`
	KWh     float64   `json:"kwh"`
}

// TotalKWh sums consumption over a series.
func TotalKWh(hourly []HourlyConsumption) float64 {
	total := 0.0
	for _, h := range hourly {
		total += h.KWh
	}
	return total
}
