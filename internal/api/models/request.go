package models

import "tariff-compare/internal/model"

// AnalyzeRequest represents the request body for a monthly tariff analysis.
// Consumption comes either from inline measurement logs or from Supla
// credentials; inline logs take precedence.
type AnalyzeRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`

	Supla *SuplaSource           `json:"supla,omitempty"`
	Logs  []model.MeasurementLog `json:"logs,omitempty"`

	Options AnalyzeOptions `json:"options,omitempty"`
}

// SuplaSource carries per-request Supla credentials, overriding the server
// configuration.
type SuplaSource struct {
	Token     string `json:"token" binding:"required"`
	ChannelID int    `json:"channel_id" binding:"required"`
}

// AnalyzeOptions contains optional analysis parameters.
type AnalyzeOptions struct {
	IncludeHourly bool `json:"include_hourly,omitempty"` // default: false
	SkipDynamic   bool `json:"skip_dynamic,omitempty"`   // default: false
}

// PricesRequest represents query parameters for fetching a price series.
type PricesRequest struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}
