package consumption

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-compare/internal/model"
)

func mkLog(ts time.Time, kwh float64) model.MeasurementLog {
	// Counters are stored in hundredths of a watt-hour.
	v := model.CounterValue(kwh * 100000)
	return model.MeasurementLog{
		DateTimestamp: ts.Unix(),
		FAEBalanced:   &v,
	}
}

func TestNormalize(t *testing.T) {
	base := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)

	t.Run("counter reset loses only the bridging interval", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(base, 100),
			mkLog(base.Add(1*time.Hour), 100.05),
			mkLog(base.Add(2*time.Hour), 99.9), // reset
			mkLog(base.Add(3*time.Hour), 100.3),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)

		// +0.05 kept, -0.15 discarded, +0.4 kept against the post-reset counter.
		require.Len(t, hourly, 2)
		assert.Equal(t, base.Add(1*time.Hour), hourly[0].HourUTC)
		assert.InDelta(t, 0.05, hourly[0].KWh, 1e-9)
		assert.Equal(t, base.Add(3*time.Hour), hourly[1].HourUTC)
		assert.InDelta(t, 0.4, hourly[1].KWh, 1e-9)
		assert.InDelta(t, 0.45, model.TotalKWh(hourly), 1e-9)
	})

	t.Run("out-of-order samples are sorted before differencing", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(base.Add(2*time.Hour), 12),
			mkLog(base, 10),
			mkLog(base.Add(1*time.Hour), 11),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)
		require.Len(t, hourly, 2)
		assert.InDelta(t, 1, hourly[0].KWh, 1e-9)
		assert.InDelta(t, 1, hourly[1].KWh, 1e-9)
	})

	t.Run("duplicate samples contribute nothing", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(base, 10),
			mkLog(base, 10),
			mkLog(base.Add(1*time.Hour), 10),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)
		assert.Empty(t, hourly)
	})

	t.Run("sub-hourly deltas accumulate into their hour", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(base.Add(50*time.Minute), 10),
			mkLog(base.Add(70*time.Minute), 10.2),
			mkLog(base.Add(90*time.Minute), 10.5),
			mkLog(base.Add(110*time.Minute), 10.6),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)
		require.Len(t, hourly, 1)
		assert.Equal(t, base.Add(time.Hour), hourly[0].HourUTC)
		assert.InDelta(t, 0.6, hourly[0].KWh, 1e-9)
	})

	t.Run("samples outside the window are ignored", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(from.Add(-2*time.Hour), 5),
			mkLog(base, 10),
			mkLog(base.Add(1*time.Hour), 10.5),
			mkLog(to.Add(2*time.Hour), 99),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)
		require.Len(t, hourly, 1)
		assert.InDelta(t, 0.5, hourly[0].KWh, 1e-9)
	})

	t.Run("output never contains negative consumption", func(t *testing.T) {
		logs := []model.MeasurementLog{
			mkLog(base, 100),
			mkLog(base.Add(1*time.Hour), 50),
			mkLog(base.Add(2*time.Hour), 20),
			mkLog(base.Add(3*time.Hour), 21),
		}
		hourly, err := Normalize(logs, from, to)
		require.NoError(t, err)
		for _, h := range hourly {
			assert.GreaterOrEqual(t, h.KWh, 0.0)
		}
	})
}

func TestNormalizeErrors(t *testing.T) {
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)

	t.Run("empty input", func(t *testing.T) {
		_, err := Normalize(nil, from, to)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("missing counter column", func(t *testing.T) {
		logs := []model.MeasurementLog{
			{DateTimestamp: from.Add(time.Hour).Unix()},
			{DateTimestamp: from.Add(2 * time.Hour).Unix()},
		}
		_, err := Normalize(logs, from, to)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})
}
