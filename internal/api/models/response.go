package models

import (
	"tariff-compare/internal/model"
	"tariff-compare/internal/prices"
)

// AnalyzeResponse is the result of one monthly analysis run. Static
// breakdowns are always present and ordered cheapest first; the dynamic
// breakdown is best-effort and may be absent.
type AnalyzeResponse struct {
	Status string `json:"status"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`

	TotalKWh  float64 `json:"total_kwh"`
	HourCount int     `json:"hour_count"`

	Static      []model.CostBreakdown `json:"static"`
	Dynamic     *model.CostBreakdown  `json:"dynamic,omitempty"`
	PriceSource string                `json:"price_source,omitempty"`

	Hourly []model.HourlyConsumption `json:"hourly,omitempty"`
}

// PricesResponse is an acquired monthly price series with its distribution.
type PricesResponse struct {
	Year   int                `json:"year"`
	Month  int                `json:"month"`
	Source string             `json:"source"`
	Stats  prices.SeriesStats `json:"stats"`
	Points []model.PricePoint `json:"points"`
}

// TariffsResponse lists the configured tariff definitions.
type TariffsResponse struct {
	Tariffs []model.TariffDefinition `json:"tariffs"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
