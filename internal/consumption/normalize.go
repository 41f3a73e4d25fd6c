// Package consumption turns raw cumulative meter counters into an hourly
// consumption series.
package consumption

import (
	"errors"
	"sort"
	"time"

	"tariff-compare/internal/model"
)

var (
	// ErrEmptyInput means the meter returned no samples for the period.
	ErrEmptyInput = errors.New("no measurement logs for the requested period")
	// ErrMissingColumn means the samples carry no usable cumulative
	// energy counter.
	ErrMissingColumn = errors.New("measurement logs missing fae_balanced counter")
)

// Normalize converts cumulative FAE counter samples into a sparse hourly
// kWh series for the [from, to] window.
//
// Samples are sorted by time and differenced pairwise. Non-positive deltas
// (counter resets, duplicate samples, clock regressions) are discarded, so a
// reset loses only the one bridging interval; subsequent deltas are computed
// against the post-reset counter and stay valid. Each kept delta is
// attributed to the hour of the later sample. Hours with no kept delta are
// omitted rather than reported as zero.
func Normalize(logs []model.MeasurementLog, from, to time.Time) ([]model.HourlyConsumption, error) {
	if len(logs) == 0 {
		return nil, ErrEmptyInput
	}

	samples := make([]model.MeasurementLog, 0, len(logs))
	for _, l := range logs {
		ts := l.Time()
		if !from.IsZero() && ts.Before(from) {
			continue
		}
		if !to.IsZero() && ts.After(to) {
			continue
		}
		samples = append(samples, l)
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].DateTimestamp < samples[j].DateTimestamp
	})

	hasCounter := false
	byHour := make(map[time.Time]float64)
	var prev *model.MeasurementLog
	for i := range samples {
		cur := &samples[i]
		if cur.FAEBalanced == nil {
			continue
		}
		hasCounter = true
		if prev != nil {
			delta := cur.FAEBalanced.KWh() - prev.FAEBalanced.KWh()
			if delta > 0 {
				hour := cur.Time().Truncate(time.Hour)
				byHour[hour] += delta
			}
		}
		prev = cur
	}
	if !hasCounter {
		return nil, ErrMissingColumn
	}

	hourly := make([]model.HourlyConsumption, 0, len(byHour))
	for hour, kwh := range byHour {
		hourly = append(hourly, model.HourlyConsumption{HourUTC: hour, KWh: kwh})
	}
	sort.Slice(hourly, func(i, j int) bool {
		return hourly[i].HourUTC.Before(hourly[j].HourUTC)
	})
	return hourly, nil
}
