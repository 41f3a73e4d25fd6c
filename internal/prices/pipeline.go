// Package prices acquires the monthly day-ahead exchange price series used
// by the dynamic tariff. Sources are tried in a fixed order and any single
// source failing just advances the chain.
package prices

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"tariff-compare/internal/model"
)

// ErrExhausted means every source in the chain yielded nothing. The chain
// ends in a deterministic simulation that cannot fail, so hitting this is a
// wiring defect rather than an expected runtime condition.
var ErrExhausted = errors.New("all price sources exhausted")

// Source is one strategy for obtaining a month of hourly prices.
// Fetch returns an empty series (or an error) when the source has no data;
// neither outcome is fatal to the pipeline.
type Source interface {
	Name() string
	Fetch(year int, month time.Month) ([]model.PricePoint, error)
}

// Pipeline runs an ordered chain of price sources and returns the first
// non-empty series.
type Pipeline struct {
	Sources []Source
}

// NewPipeline assembles the default chain: cached file, live scrape with
// write-back through the cache, public settlement dataset, simulation.
func NewPipeline(cache *FileCache) *Pipeline {
	return &Pipeline{
		Sources: []Source{
			cache,
			NewScrapeSource(cache),
			NewPSESource(),
			NewSimulatedSource(),
		},
	}
}

// Acquire returns the price series for the month together with the name of
// the source that produced it. The series is restricted to hours inside the
// requested UTC month and holds at most one point per hour.
func (p *Pipeline) Acquire(year int, month time.Month) ([]model.PricePoint, string, error) {
	if memo := getSeriesCache(); memo != nil {
		if entry, ok := memo.Get(year, month); ok {
			log.Printf("[Pipeline] %d-%02d: memoized series from %s (%d points)",
				year, month, entry.Source, len(entry.Points))
			return entry.Points, entry.Source, nil
		}
	}

	for _, src := range p.Sources {
		points, err := src.Fetch(year, month)
		if err != nil {
			log.Printf("[Pipeline] source %s failed for %d-%02d: %v", src.Name(), year, month, err)
			continue
		}
		points = clampToMonth(points, year, month)
		if len(points) == 0 {
			log.Printf("[Pipeline] source %s returned no data for %d-%02d", src.Name(), year, month)
			continue
		}
		log.Printf("[Pipeline] source %s yielded %d points for %d-%02d", src.Name(), len(points), year, month)
		if memo := getSeriesCache(); memo != nil {
			memo.Set(year, month, seriesEntry{Points: points, Source: src.Name()})
		}
		return points, src.Name(), nil
	}

	return nil, "", fmt.Errorf("%w: %d-%02d", ErrExhausted, year, month)
}

// clampToMonth drops hours outside the UTC month and collapses duplicate
// hours, keeping the first occurrence. Output is sorted by hour.
func clampToMonth(points []model.PricePoint, year int, month time.Month) []model.PricePoint {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	seen := make(map[time.Time]bool, len(points))
	out := make([]model.PricePoint, 0, len(points))
	for _, pt := range points {
		hour := pt.HourUTC.UTC().Truncate(time.Hour)
		if hour.Before(start) || !hour.Before(end) {
			continue
		}
		if seen[hour] {
			continue
		}
		seen[hour] = true
		out = append(out, model.PricePoint{HourUTC: hour, PriceKWh: pt.PriceKWh})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HourUTC.Before(out[j].HourUTC) })
	return out
}

// daysIn returns the number of days in the month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// localTZ returns the Europe/Warsaw location. Exchange quotes and the PSE
// dataset are published in Polish local time.
func localTZ() *time.Location {
	loc, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		return time.FixedZone("CET", 3600)
	}
	return loc
}
