package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tariff-compare/internal/config"
	"tariff-compare/internal/consumption"
	"tariff-compare/internal/cost"
	"tariff-compare/internal/model"
	"tariff-compare/internal/prices"
	"tariff-compare/internal/report"
	"tariff-compare/internal/supla"
	"tariff-compare/internal/tariff"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "prices":
		cmdPrices(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --config config.yaml [--year 2026 --month 1] [--out-dir results]")
	fmt.Println("  cli prices --year 2026 --month 1 [--out-dir results]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze compares G11/G12/G12w/G12n plus the dynamic (exchange) tariff")
	fmt.Println("  - prices walks the acquisition chain (cache -> scrape -> PSE -> simulated)")
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	year := fs.Int("year", 0, "Override analysis year")
	month := fs.Int("month", 0, "Override analysis month (1-12)")
	outDir := fs.String("out-dir", "", "Optional: write hourly + breakdown CSVs here")
	_ = fs.Parse(args)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = *loaded
	}
	if *year != 0 {
		cfg.Year = *year
	}
	if *month != 0 {
		cfg.Month = *month
	}
	if cfg.Year == 0 || cfg.Month < 1 || cfg.Month > 12 {
		fmt.Println("year and month are required (config or flags)")
		os.Exit(2)
	}
	if cfg.Supla.Token == "" {
		fmt.Println("supla.token is required in the config")
		os.Exit(2)
	}

	from, to := supla.MonthRangeUTC(cfg.Year, time.Month(cfg.Month))

	client, err := supla.NewClient(cfg.Supla.Token, "", supla.NewLogCache(cfg.CacheDir))
	if err != nil {
		panic(err)
	}
	logs, err := client.FetchMeasurementLogs(cfg.Supla.ChannelID, from, to)
	if err != nil {
		panic(err)
	}

	hourly, err := consumption.Normalize(logs, from, to)
	if err != nil {
		panic(err)
	}

	classifier := &tariff.Classifier{SummerWinter: cfg.MeterSupportsSummerWinter}
	if cfg.UsePolishHolidays {
		classifier.Holidays = tariff.NewPolishHolidays()
	}
	engine := cost.New(classifier)

	static, err := engine.ComputeStatic(hourly, &cfg)
	if err != nil {
		panic(err)
	}

	var dynamic *model.CostBreakdown
	pipeline := prices.NewPipeline(prices.NewFileCache(cfg.CacheDir))
	points, source, err := pipeline.Acquire(cfg.Year, time.Month(cfg.Month))
	if err != nil {
		// The dynamic tariff is best-effort; the static results stand.
		log.Printf("[CLI] dynamic price acquisition failed: %v", err)
	} else {
		dynamic = engine.ComputeDynamic(hourly, points, &cfg)
	}

	fmt.Printf("Analysis %d-%02d: %d hours, %.2f kWh\n\n",
		cfg.Year, cfg.Month, len(hourly), model.TotalKWh(hourly))
	report.WriteComparisonTable(os.Stdout, static, dynamic)
	if dynamic != nil {
		fmt.Printf("dynamic price source: %s\n", source)
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			panic(err)
		}
		hourlyPath := filepath.Join(*outDir, "hourly.csv")
		if err := report.WriteHourlyCSV(hourlyPath, hourly); err != nil {
			panic(err)
		}
		breakdowns := static
		if dynamic != nil {
			breakdowns = append(breakdowns, *dynamic)
		}
		breakdownPath := filepath.Join(*outDir, "breakdowns.csv")
		if err := report.WriteBreakdownCSV(breakdownPath, breakdowns); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote %s and %s\n", hourlyPath, breakdownPath)
	}
}

func cmdPrices(args []string) {
	fs := flag.NewFlagSet("prices", flag.ExitOnError)
	year := fs.Int("year", 0, "Year")
	month := fs.Int("month", 0, "Month (1-12)")
	cacheDir := fs.String("cache-dir", ".", "Price cache directory")
	outDir := fs.String("out-dir", "", "Optional: persist the series as a cache CSV in this directory")
	_ = fs.Parse(args)

	if *year == 0 || *month < 1 || *month > 12 {
		fmt.Println("--year and --month are required")
		os.Exit(2)
	}

	pipeline := prices.NewPipeline(prices.NewFileCache(*cacheDir))
	points, source, err := pipeline.Acquire(*year, time.Month(*month))
	if err != nil {
		panic(err)
	}

	stats := prices.ComputeStats(points)
	fmt.Printf("%d-%02d: %d points from %s\n", *year, *month, len(points), source)
	fmt.Printf("mean=%.4f min=%.4f max=%.4f (currency/kWh net)\n", stats.Mean, stats.Min, stats.Max)

	if *outDir != "" {
		if err := prices.NewFileCache(*outDir).Store(*year, time.Month(*month), points); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(points),
			filepath.Join(*outDir, fmt.Sprintf("tge_prices_%d_%02d.csv", *year, *month)))
	}
}
