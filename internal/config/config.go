package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tariff-compare/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Supla SuplaConfig `yaml:"supla"`

	Year  int `yaml:"year"`
	Month int `yaml:"month"`

	// CacheDir holds the measurement-log and price-series cache files.
	CacheDir string `yaml:"cache_dir"`

	UsePolishHolidays         bool `yaml:"use_polish_holidays"`
	MeterSupportsSummerWinter bool `yaml:"meter_supports_summer_winter"`

	// Optional: load the tariff price table from a separate YAML.
	// If both TariffFile and Tariffs are provided, Tariffs overrides TariffFile.
	TariffFile string      `yaml:"tariff_file"`
	Tariffs    TariffTable `yaml:"tariffs"`

	FixedCharges FixedCharges  `yaml:"fixed_charges"`
	Surcharges   Surcharges    `yaml:"surcharges"`
	VATRate      float64       `yaml:"vat_rate"`
	Dynamic      DynamicConfig `yaml:"dynamic"`
}

type SuplaConfig struct {
	Token     string `yaml:"token"`
	ChannelID int    `yaml:"channel_id"`
}

// TariffTable maps each static tariff to its per-zone net unit prices
// (energy plus variable distribution, currency/kWh).
type TariffTable map[model.TariffID]map[model.Zone]float64

// FixedCharges are the monthly fixed charges from the distribution bill,
// net of tax.
type FixedCharges struct {
	Commercial   float64 `yaml:"commercial"`
	Capacity     float64 `yaml:"capacity"`
	Network      float64 `yaml:"network"`
	Subscription float64 `yaml:"subscription"`
	Transitional float64 `yaml:"transitional"`
}

func (f FixedCharges) Total() float64 {
	return f.Commercial + f.Capacity + f.Network + f.Subscription + f.Transitional
}

// NonCommercial is the fixed-charge sum without the commercial charge; the
// dynamic offer replaces that one charge with its own.
func (f FixedCharges) NonCommercial() float64 {
	return f.Capacity + f.Network + f.Subscription + f.Transitional
}

// Surcharges are usage-proportional charges in currency/kWh.
type Surcharges struct {
	RES          float64 `yaml:"res"`
	Cogeneration float64 `yaml:"cogeneration"`
}

func (s Surcharges) PerKWh() float64 {
	return s.RES + s.Cogeneration
}

// DynamicConfig parameterizes the market-indexed offer: supplier margin on
// top of the exchange price, a higher commercial fixed charge, and the
// day/night distribution rates blended into the per-kWh price.
type DynamicConfig struct {
	Margin            float64 `yaml:"margin"`
	FixedCharge       float64 `yaml:"fixed_charge"`
	DistributionDay   float64 `yaml:"distribution_day"`
	DistributionNight float64 `yaml:"distribution_night"`
}

// BlendedDistribution is the flat distribution rate applied to every hour
// of the dynamic tariff, taken as the simple day/night average.
func (d DynamicConfig) BlendedDistribution() float64 {
	return (d.DistributionDay + d.DistributionNight) / 2
}

// Default returns the built-in configuration with the published PGE price
// sheet, so the tool runs without a config file.
func Default() Config {
	return Config{
		CacheDir:                  ".",
		UsePolishHolidays:         true,
		MeterSupportsSummerWinter: true,
		Tariffs: TariffTable{
			model.TariffG11: {
				model.ZoneAll: 0.5000 + 0.43360,
			},
			model.TariffG12: {
				model.ZoneDay:   0.5656 + 0.43360,
				model.ZoneNight: 0.3718 + 0.10860,
			},
			model.TariffG12w: {
				model.ZoneDay:   0.5821 + 0.43360,
				model.ZoneNight: 0.4235 + 0.10860,
			},
			model.TariffG12n: {
				model.ZoneDay:   0.55511 + 0.43360,
				model.ZoneNight: 0.3912 + 0.10860,
			},
		},
		FixedCharges: FixedCharges{
			Commercial:   12.48,
			Capacity:     6.86,
			Network:      14.40,
			Subscription: 4.50,
			Transitional: 0.10,
		},
		Surcharges: Surcharges{
			RES:          0.00350,
			Cogeneration: 0.00300,
		},
		VATRate: 0.23,
		Dynamic: DynamicConfig{
			Margin:            0.15,
			FixedCharge:       29.98,
			DistributionDay:   0.43360,
			DistributionNight: 0.10860,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config over the defaults, but does not
// validate it. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	// Price sheets layer as defaults, then tariff_file, then explicit
	// tariffs from the config itself. Start from a nil table so explicit
	// entries are distinguishable from the built-in sheet.
	table := c.Tariffs
	c.Tariffs = nil
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	explicit := c.Tariffs
	if c.TariffFile != "" {
		tariffPath := c.TariffFile
		if !filepath.IsAbs(tariffPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), tariffPath)
			if _, err := os.Stat(cand); err == nil {
				tariffPath = cand
			}
		}
		loaded, err := loadTariffFile(tariffPath)
		if err != nil {
			return nil, err
		}
		table = MergeTariffs(table, loaded)
	}
	c.Tariffs = MergeTariffs(table, explicit)
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Month != 0 && (c.Month < 1 || c.Month > 12) {
		return fmt.Errorf("month must be in 1..12, got %d", c.Month)
	}
	if c.VATRate < 0 || c.VATRate >= 1 {
		return fmt.Errorf("vat_rate must be in [0,1), got %v", c.VATRate)
	}
	for _, id := range model.StaticTariffs {
		zones, ok := c.Tariffs[id]
		if !ok {
			return fmt.Errorf("tariffs missing %s", id)
		}
		want := []model.Zone{model.ZoneDay, model.ZoneNight}
		if id == model.TariffG11 {
			want = []model.Zone{model.ZoneAll}
		}
		for _, z := range want {
			price, ok := zones[z]
			if !ok {
				return fmt.Errorf("tariff %s missing zone %q price", id, z)
			}
			if price < 0 {
				return fmt.Errorf("tariff %s zone %q price is negative", id, z)
			}
		}
	}
	if c.Dynamic.Margin < 0 || c.Dynamic.FixedCharge < 0 {
		return errors.New("dynamic offer parameters must be non-negative")
	}
	return nil
}

type tariffFileWrapper struct {
	Tariffs TariffTable `yaml:"tariffs"`
}

func loadTariffFile(path string) (TariffTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w tariffFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Tariffs, nil
}

// MergeTariffs overlays any per-zone prices from override onto base.
func MergeTariffs(base, override TariffTable) TariffTable {
	out := make(TariffTable, len(base))
	for id, zones := range base {
		cp := make(map[model.Zone]float64, len(zones))
		for z, p := range zones {
			cp[z] = p
		}
		out[id] = cp
	}
	for id, zones := range override {
		if out[id] == nil {
			out[id] = make(map[model.Zone]float64, len(zones))
		}
		for z, p := range zones {
			out[id][z] = p
		}
	}
	return out
}
