package model

// ZoneUsage summarizes how much of the month landed in one zone.
type ZoneUsage struct {
	Hours int     `json:"hours"`
	KWh   float64 `json:"kwh"`
}

// DynamicStats carries diagnostics specific to the dynamic tariff: the raw
// exchange price distribution and how many consumption hours found a price.
type DynamicStats struct {
	MeanSourcePrice float64 `json:"mean_source_price"`
	MinSourcePrice  float64 `json:"min_source_price"`
	MaxSourcePrice  float64 `json:"max_source_price"`
	MatchedHours    int     `json:"matched_hours"`
}

// CostBreakdown is the monthly cost estimate for one tariff.
// All monetary fields are in the billing currency; Net* fields are pre-tax.
type CostBreakdown struct {
	Tariff          TariffID           `json:"tariff"`
	EnergyCostNet   float64            `json:"energy_cost_net"`
	FixedChargesNet float64            `json:"fixed_charges_net"`
	SurchargesNet   float64            `json:"surcharges_net"`
	NetTotal        float64            `json:"net_total"`
	Tax             float64            `json:"tax"`
	GrossTotal      float64            `json:"gross_total"`
	TotalKWh        float64            `json:"total_kwh"`
	DeltaToCheapest float64            `json:"delta_to_cheapest"`
	ZoneUsage       map[Zone]ZoneUsage `json:"zone_usage,omitempty"`
	Dynamic         *DynamicStats      `json:"dynamic,omitempty"`
}
