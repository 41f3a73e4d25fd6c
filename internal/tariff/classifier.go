package tariff

import (
	"errors"
	"fmt"
	"time"

	"tariff-compare/internal/model"
)

// ErrUnknownTariff is returned when a tariff has no classification rule.
var ErrUnknownTariff = errors.New("unknown tariff")

// HolidayChecker reports whether a local date is a recognized public holiday.
// It is optional: a nil checker degrades to weekend-only rules.
type HolidayChecker interface {
	IsHoliday(date time.Time) bool
}

// Classifier assigns each local hour to a tariff zone.
type Classifier struct {
	// SummerWinter enables the seasonal G12 window switch. Meters without
	// the capability bill on the winter-shaped windows all year.
	SummerWinter bool
	// Holidays is the optional public-holiday calendar.
	Holidays HolidayChecker
}

// Classify maps a local timestamp to the zone it is billed under.
//
// G12w forces weekend and holiday hours into the night zone. G12n forces
// Sundays and holidays into the night zone and otherwise uses a fixed
// 01:00-05:00 night band; that band comes from the tariff sheet as-is and
// is unrelated to the seasonal G12 windows.
func (c *Classifier) Classify(local time.Time, tariff model.TariffID) (model.Zone, error) {
	hour := local.Hour()

	switch tariff {
	case model.TariffG11:
		return model.ZoneAll, nil

	case model.TariffG12:
		_, night := G12Windows(local.Month(), c.SummerWinter)
		if night.Contains(hour) {
			return model.ZoneNight, nil
		}
		return model.ZoneDay, nil

	case model.TariffG12w:
		if c.isWeekendOrHoliday(local) {
			return model.ZoneNight, nil
		}
		_, night := G12Windows(local.Month(), c.SummerWinter)
		if night.Contains(hour) {
			return model.ZoneNight, nil
		}
		return model.ZoneDay, nil

	case model.TariffG12n:
		if c.isSundayOrHoliday(local) {
			return model.ZoneNight, nil
		}
		if 1 <= hour && hour < 5 {
			return model.ZoneNight, nil
		}
		return model.ZoneDay, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownTariff, tariff)
}

func (c *Classifier) isWeekendOrHoliday(local time.Time) bool {
	wd := local.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return true
	}
	return c.Holidays != nil && c.Holidays.IsHoliday(local)
}

func (c *Classifier) isSundayOrHoliday(local time.Time) bool {
	if local.Weekday() == time.Sunday {
		return true
	}
	return c.Holidays != nil && c.Holidays.IsHoliday(local)
}
