package prices

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"tariff-compare/internal/model"
)

// quoteRowPattern matches one hour row of the rendered quote table:
// "0-1" (hour band), the PLN/MWh quote, then the PLN/kWh price.
var quoteRowPattern = regexp.MustCompile(`(\d+)-(\d+)\s*[\d.]+\s*(0\.\d+)`)

// ScrapeSource reads hourly quotes for each day of the month from the
// supplier's dynamic-offer page.
//
// The day loop stops on the first day that yields no table; a missing day
// usually signals the page being down rather than a one-day gap, and the
// partial month is still accepted when at least 80% of days were fetched.
// An accepted month is written back through the file cache so later runs
// skip the scrape entirely.
type ScrapeSource struct {
	BaseURL string
	Client  *http.Client
	Cache   *FileCache
}

func NewScrapeSource(cache *FileCache) *ScrapeSource {
	return &ScrapeSource{
		BaseURL: "https://www.gkpge.pl/dla-domu/oferta/dynamiczna-energia-z-pge",
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		Cache: cache,
	}
}

func (s *ScrapeSource) Name() string { return "pge-scrape" }

func (s *ScrapeSource) Fetch(year int, month time.Month) ([]model.PricePoint, error) {
	lastDay := daysIn(year, month)
	var all []model.PricePoint
	fetched := 0

	for day := 1; day <= lastDay; day++ {
		points, err := s.fetchDay(year, month, day)
		if err != nil || len(points) == 0 {
			if err != nil {
				log.Printf("[Scrape] %d-%02d-%02d: %v", year, month, day, err)
			} else {
				log.Printf("[Scrape] %d-%02d-%02d: no quote table", year, month, day)
			}
			break
		}
		all = append(all, points...)
		fetched++
		if day%7 == 0 {
			log.Printf("[Scrape] fetched %d/%d days of %d-%02d", day, lastDay, year, month)
		}
	}

	if float64(fetched) < 0.8*float64(lastDay) {
		return nil, fmt.Errorf("fetched only %d/%d days", fetched, lastDay)
	}

	if s.Cache != nil {
		if err := s.Cache.Store(year, month, all); err != nil {
			log.Printf("[Scrape] cache write-back failed: %v", err)
		}
	}
	log.Printf("[Scrape] accepted %d/%d days for %d-%02d", fetched, lastDay, year, month)
	return all, nil
}

func (s *ScrapeSource) fetchDay(year int, month time.Month, day int) ([]model.PricePoint, error) {
	dateStr := fmt.Sprintf("%d-%02d-%02d", year, month, day)

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("tge_quotes_form[dateTime]", dateStr)
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
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

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	container := doc.Find("div.tge-quotes-element-container")
	if container.Length() == 0 {
		container = doc.Find("#application-143455")
	}
	if container.Length() == 0 {
		return nil, nil
	}

	text := renderedText(container.First())
	parts := strings.SplitN(text, "Kurs (PLN/kWh)", 2)
	if len(parts) < 2 {
		return nil, nil
	}

	loc := localTZ()
	var points []model.PricePoint
	for _, m := range quoteRowPattern.FindAllStringSubmatch(parts[1], -1) {
		hour, err := strconv.Atoi(m[1])
		if err != nil || hour < 0 || hour >= 24 {
			continue
		}
		price, err := strconv.ParseFloat(m[3], 64)
		if err != nil || price < 0.01 || price > 10 {
			continue
		}
		local := time.Date(year, month, day, hour, 0, 0, 0, loc)
		points = append(points, model.PricePoint{HourUTC: local.UTC(), PriceKWh: price})
	}
	return points, nil
}

// renderedText flattens a DOM subtree to its text, one text node per line,
// matching how the hour/quote/price triples are laid out on the page.
func renderedText(sel *goquery.Selection) string {
	var lines []string
	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			if goquery.NodeName(c) == "#text" {
				if t := strings.TrimSpace(c.Text()); t != "" {
					lines = append(lines, t)
				}
				return
			}
			walk(c)
		})
	}
	walk(sel)
	return strings.Join(lines, "\n")
}
