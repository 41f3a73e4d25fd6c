package model

// TariffID identifies one of the supported PGE billing tariffs.
type TariffID string

const (
	TariffG11     TariffID = "G11"
	TariffG12     TariffID = "G12"
	TariffG12w    TariffID = "G12w"
	TariffG12n    TariffID = "G12n"
	TariffDynamic TariffID = "Dynamic"
)

// StaticTariffs lists the fixed-price tariffs in their conventional order.
// The dynamic tariff is priced from an external series and handled separately.
var StaticTariffs = []TariffID{TariffG11, TariffG12, TariffG12w, TariffG12n}

// Zone is a time-of-use label assigned to each hour under a tariff.
type Zone string

const (
	ZoneAll   Zone = "all"
	ZoneDay   Zone = "day"
	ZoneNight Zone = "night"
)

// TariffDefinition maps each of a tariff's zones to a net unit price in
// currency per kWh (energy plus variable distribution).
type TariffDefinition struct {
	ID     TariffID         `json:"id" yaml:"-"`
	Prices map[Zone]float64 `json:"prices" yaml:",inline"`
}

// Zones returns the tariff's zone set. Classification for a tariff yields
// exactly this set of labels.
func (d TariffDefinition) Zones() []Zone {
	if _, ok := d.Prices[ZoneAll]; ok {
		return []Zone{ZoneAll}
	}
	return []Zone{ZoneDay, ZoneNight}
}
