package prices

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"tariff-compare/internal/model"
)

// PSESource fetches the grid operator's public day-ahead settlement report,
// published as a monthly spreadsheet. Column naming varies between report
// revisions, so columns are matched by substring; a workbook where the
// date/hour/price columns cannot be identified yields no result.
type PSESource struct {
	// URLTemplates are tried in order; each receives (year, month).
	URLTemplates []string
	Client       *http.Client
}

func NewPSESource() *PSESource {
	return &PSESource{
		URLTemplates: []string{
			"https://www.pse.pl/-/ceny-rynkowe-rdn-%d-%02d",
			"https://www.pse.pl/getattachment/data/%d/%02d/ceny-rdn.xlsx",
		},
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *PSESource) Name() string { return "pse-dataset" }

func (s *PSESource) Fetch(year int, month time.Month) ([]model.PricePoint, error) {
	for _, tmpl := range s.URLTemplates {
		u := fmt.Sprintf(tmpl, year, int(month))
		points, err := s.fetchWorkbook(u, year, month)
		if err != nil {
			log.Printf("[PSE] %s: %v", u, err)
			continue
		}
		if len(points) > 0 {
			return points, nil
		}
	}
	return nil, nil
}

func (s *PSESource) fetchWorkbook(u string, year int, month time.Month) ([]model.PricePoint, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	wb, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return parsePSERows(rows), nil
}

// parsePSERows normalizes (date, hour, PLN/MWh) rows into hourly PricePoints.
// Rows that fail to parse are dropped individually; an unrecognizable header
// drops the whole table.
func parsePSERows(rows [][]string) []model.PricePoint {
	if len(rows) < 2 {
		return nil
	}

	dateCol, hourCol, priceCol := -1, -1, -1
	for i, name := range rows[0] {
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "data") || strings.Contains(lower, "date"):
			dateCol = i
		case strings.Contains(lower, "godzina") || strings.Contains(lower, "hour"):
			hourCol = i
		case strings.Contains(lower, "cena") || strings.Contains(lower, "price") ||
			strings.Contains(lower, "rdn"):
			priceCol = i
		}
	}
	if dateCol < 0 || hourCol < 0 || priceCol < 0 {
		return nil
	}

	loc := localTZ()
	var points []model.PricePoint
	for _, row := range rows[1:] {
		if len(row) <= dateCol || len(row) <= hourCol || len(row) <= priceCol {
			continue
		}
		date, err := parsePSEDate(row[dateCol])
		if err != nil {
			continue
		}
		hour, err := strconv.Atoi(strings.TrimSpace(row[hourCol]))
		if err != nil || hour < 0 || hour >= 24 {
			continue
		}
		priceMWh, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(row[priceCol]), ",", "."), 64)
		if err != nil {
			continue
		}
		local := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, loc)
		points = append(points, model.PricePoint{
			HourUTC:  local.UTC(),
			PriceKWh: priceMWh / 1000.0,
		})
	}
	return points
}

func parsePSEDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02.01.2006", "01-02-06", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
