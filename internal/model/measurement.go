package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// MeasurementLog is one row from the Supla measurement-logs endpoint.
//
// Example:
//
//	{
//	  "date_timestamp": 1767225600,
//	  "phase1_fae": "1234500.00",
//	  "fae_balanced": "3703500.00"
//	}
//
// Energy counters are cumulative forward active energy (FAE) in hundredths
// of a watt-hour. The API serializes them sometimes as numbers and sometimes
// as quoted strings, so they decode through CounterValue.
type MeasurementLog struct {
	DateTimestamp int64         `json:"date_timestamp"`
	Phase1FAE     *CounterValue `json:"phase1_fae,omitempty"`
	Phase2FAE     *CounterValue `json:"phase2_fae,omitempty"`
	Phase3FAE     *CounterValue `json:"phase3_fae,omitempty"`
	FAEBalanced   *CounterValue `json:"fae_balanced,omitempty"`
}

// Time returns the sample instant in UTC.
func (m MeasurementLog) Time() time.Time {
	return time.Unix(m.DateTimestamp, 0).UTC()
}

// CounterValue is a cumulative counter reading that tolerates both numeric
// and string JSON encodings.
type CounterValue float64

func (v *CounterValue) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = CounterValue(f)
	return nil
}

func (v CounterValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(v))
}

// KWh converts from the vendor unit (0.01 Wh) to kilowatt-hours.
func (v CounterValue) KWh() float64 {
	return float64(v) / 100000.0
}
