// Package supla fetches cumulative energy measurement logs from the Supla
// Cloud API.
package supla

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tariff-compare/internal/model"
)

// Client reads measurement logs for one meter channel.
type Client struct {
	Token   string
	BaseURL string
	Client  *http.Client
	Cache   *LogCache
}

// SuplaError represents an error response from the Supla API.
type SuplaError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *SuplaError) Error() string {
	return e.Message
}

// DecodeAPIBase extracts the target API base URL from a Supla personal
// access token. Tokens have the form <random>.<base64url(api_base)>.
func DecodeAPIBase(token string) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("token has no embedded API address")
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", fmt.Errorf("token API address is not base64url: %w", err)
	}
	base := strings.TrimSpace(string(raw))
	return strings.TrimRight(base, "/"), nil
}

// NewClient builds a client from a personal access token. If baseURL is
// empty it is decoded from the token; cache may be nil to disable the log
// file cache.
func NewClient(token, baseURL string, cache *LogCache) (*Client, error) {
	if baseURL == "" {
		decoded, err := DecodeAPIBase(token)
		if err != nil {
			return nil, err
		}
		baseURL = decoded
	}
	return &Client{
		Token:   token,
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		Cache: cache,
	}, nil
}

// FetchMeasurementLogs returns the raw cumulative counter samples for the
// channel within [from, to]. A cached snapshot for the same
// (channel, year, month) key is returned without touching the network;
// freshly fetched logs are written back to the cache.
func (c *Client) FetchMeasurementLogs(channelID int, from, to time.Time) ([]model.MeasurementLog, error) {
	if c.Cache != nil {
		if logs, ok := c.Cache.Read(channelID, from.Year(), from.Month()); ok {
			log.Printf("[Supla] cache hit: %d logs (channel=%d, %d-%02d)",
				len(logs), channelID, from.Year(), from.Month())
			return logs, nil
		}
	}

	u, err := url.Parse(fmt.Sprintf("%s/api/v3/channels/%d/measurement-logs", c.BaseURL, channelID))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("dateFrom", from.Format(time.RFC3339))
	q.Set("dateTo", to.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	log.Printf("[Supla] Request: GET %s (channel=%d, from=%s, to=%s)",
		u.Path, channelID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		log.Printf("[Supla] Request failed: %v (duration: %v)", err, duration)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[Supla] Response: %d %s (duration: %v, channel=%d)",
		resp.StatusCode, resp.Status, duration, channelID)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &SuplaError{
			StatusCode: resp.StatusCode,
			Code:       "UNAUTHORIZED",
			Message:    "Invalid or expired access token",
		}
	case http.StatusTooManyRequests:
		return nil, &SuplaError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    "Rate limit exceeded",
		}
	default:
		return nil, &SuplaError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var logs []model.MeasurementLog
	if err := json.NewDecoder(resp.Body).Decode(&logs); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	log.Printf("[Supla] Success: received %d logs (channel=%d)", len(logs), channelID)

	if c.Cache != nil {
		if err := c.Cache.Write(channelID, from.Year(), from.Month(), logs); err != nil {
			log.Printf("[Supla] cache write failed: %v", err)
		}
	}
	return logs, nil
}

// MonthRangeUTC returns the inclusive UTC bounds of a calendar month, as
// passed to FetchMeasurementLogs for a monthly analysis.
func MonthRangeUTC(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
