package prices

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-compare/internal/model"
)

func TestFileCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir)

	points := []model.PricePoint{
		{HourUTC: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), PriceKWh: 0.35},
		{HourUTC: time.Date(2025, time.December, 1, 1, 0, 0, 0, time.UTC), PriceKWh: 0.32178},
	}
	require.NoError(t, cache.Store(2025, time.December, points))

	got, err := cache.Fetch(2025, time.December)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, points[0].HourUTC, got[0].HourUTC)
	assert.InDelta(t, 0.35, got[0].PriceKWh, 1e-9)
	assert.InDelta(t, 0.32178, got[1].PriceKWh, 1e-9)

	// One file per month under the canonical name.
	_, err = os.Stat(filepath.Join(dir, "tge_prices_2025_12.csv"))
	assert.NoError(t, err)
}

func TestFileCacheMiss(t *testing.T) {
	cache := NewFileCache(t.TempDir())
	got, err := cache.Fetch(2025, time.January)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileCacheRejectsBadFiles(t *testing.T) {
	t.Run("wrong header", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tge_prices_2025_03.csv")
		require.NoError(t, os.WriteFile(path, []byte("hour,value\n2025-03-01 00:00:00,0.3\n"), 0o644))

		got, err := NewFileCache(dir).Fetch(2025, time.March)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tge_prices_2025_03.csv")
		require.NoError(t, os.WriteFile(path, []byte("timestamp,price_kwh\nnot-a-time,0.3\n"), 0o644))

		got, err := NewFileCache(dir).Fetch(2025, time.March)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed price", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tge_prices_2025_03.csv")
		require.NoError(t, os.WriteFile(path, []byte("timestamp,price_kwh\n2025-03-01 00:00:00,cheap\n"), 0o644))

		got, err := NewFileCache(dir).Fetch(2025, time.March)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFileCacheStoreOverwrites(t *testing.T) {
	dir := t.TempDir()
	cache := NewFileCache(dir)
	hour := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Store(2025, time.December, []model.PricePoint{{HourUTC: hour, PriceKWh: 0.1}}))
	require.NoError(t, cache.Store(2025, time.December, []model.PricePoint{{HourUTC: hour, PriceKWh: 0.2}}))

	got, err := cache.Fetch(2025, time.December)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.2, got[0].PriceKWh, 1e-9)
}
