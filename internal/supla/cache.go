package supla

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tariff-compare/internal/model"
)

// LogCache persists raw measurement-log snapshots as JSON, one file per
// (channel, year, month). Snapshots are read back verbatim on later runs
// with the same key.
type LogCache struct {
	Dir string
}

func NewLogCache(dir string) *LogCache {
	if dir == "" {
		dir = "."
	}
	return &LogCache{Dir: dir}
}

func (c *LogCache) path(channelID, year int, month time.Month) string {
	return filepath.Join(c.Dir, fmt.Sprintf("supla_logs_%d_%d_%02d.json", channelID, year, month))
}

// Read returns the cached snapshot and whether one was usable. An unreadable
// or corrupt file just misses, so the caller falls through to the API.
func (c *LogCache) Read(channelID, year int, month time.Month) ([]model.MeasurementLog, bool) {
	path := c.path(channelID, year, month)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var logs []model.MeasurementLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		log.Printf("[Supla] cache file %s corrupt, refetching: %v", path, err)
		return nil, false
	}
	return logs, true
}

// Write stores a snapshot, whole-file via temp file and rename.
func (c *LogCache) Write(channelID, year int, month time.Month, logs []model.MeasurementLog) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.Dir, "supla_logs_*.json.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path(channelID, year, month))
}
