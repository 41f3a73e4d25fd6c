package prices

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tariff-compare/internal/model"
)

const cacheTimeLayout = "2006-01-02 15:04:05"

// FileCache persists one CSV price series per (year, month) and doubles as
// the first source in the acquisition chain. The layout is one row per hour:
//
//	timestamp,price_kwh
//	2025-12-01 00:00:00,0.350
//
// with timestamps in naive UTC.
type FileCache struct {
	Dir string
}

func NewFileCache(dir string) *FileCache {
	if dir == "" {
		dir = "."
	}
	return &FileCache{Dir: dir}
}

func (c *FileCache) Name() string { return "csv-cache" }

func (c *FileCache) path(year int, month time.Month) string {
	return filepath.Join(c.Dir, fmt.Sprintf("tge_prices_%d_%02d.csv", year, month))
}

// Fetch reads a previously persisted series. A missing file or a file with
// an unrecognized schema yields an empty result, not an error; the pipeline
// then moves on to the live sources.
func (c *FileCache) Fetch(year int, month time.Month) ([]model.PricePoint, error) {
	path := c.path(year, month)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		log.Printf("[Prices] cache file %s unreadable, skipping: %v", path, err)
		return nil, nil
	}
	if len(records) < 2 || len(records[0]) < 2 ||
		records[0][0] != "timestamp" || records[0][1] != "price_kwh" {
		log.Printf("[Prices] cache file %s has unexpected schema, skipping", path)
		return nil, nil
	}

	points := make([]model.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		ts, err := time.ParseInLocation(cacheTimeLayout, rec[0], time.UTC)
		if err != nil {
			log.Printf("[Prices] cache file %s has malformed row, skipping file: %v", path, err)
			return nil, nil
		}
		price, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			log.Printf("[Prices] cache file %s has malformed row, skipping file: %v", path, err)
			return nil, nil
		}
		points = append(points, model.PricePoint{HourUTC: ts, PriceKWh: price})
	}
	log.Printf("[Prices] loaded %d points from %s", len(points), path)
	return points, nil
}

// Store persists an acquired series for later runs with the same key.
// The file is written whole via a temp file and rename.
func (c *FileCache) Store(year int, month time.Month, points []model.PricePoint) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	path := c.path(year, month)
	tmp, err := os.CreateTemp(c.Dir, "tge_prices_*.csv.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write([]string{"timestamp", "price_kwh"}); err != nil {
		tmp.Close()
		return err
	}
	for _, pt := range points {
		row := []string{
			pt.HourUTC.UTC().Format(cacheTimeLayout),
			strconv.FormatFloat(pt.PriceKWh, 'f', 5, 64),
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	log.Printf("[Prices] persisted %d points to %s", len(points), path)
	return nil
}
