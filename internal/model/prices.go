package model

import "time"

// PricePoint is one hour of the day-ahead exchange price series.
// PriceKWh is net of tax, in currency per kWh.
type PricePoint struct {
	HourUTC  time.Time `json:"hour_utc"`
	PriceKWh float64   `json:"price_kwh"`
}
