package tariff

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/pl"
)

// PolishHolidays is a HolidayChecker backed by the statutory Polish holiday
// calendar.
type PolishHolidays struct {
	cal *cal.Calendar
}

func NewPolishHolidays() *PolishHolidays {
	c := &cal.Calendar{}
	c.AddHoliday(pl.Holidays...)
	return &PolishHolidays{cal: c}
}

func (p *PolishHolidays) IsHoliday(date time.Time) bool {
	actual, _, _ := p.cal.IsHoliday(date)
	return actual
}
