package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/geosignal/quakescope/internal/catalog"
	"github.com/geosignal/quakescope/internal/config"
	"github.com/geosignal/quakescope/internal/logger"
	"github.com/geosignal/quakescope/internal/models"
	"github.com/geosignal/quakescope/internal/pipeline"
	"github.com/geosignal/quakescope/internal/stats"
)

var (
	flagStart   string
	flagEnd     string
	flagMinMag  float64
	flagMaxMag  float64
	flagOrderBy string
	flagAlert   string
	flagRegions string
	flagSummary bool
)

var rootCmd = &cobra.Command{
	Use:   "quakescope",
	Short: "Query and filter seismic events from the remote catalog",
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one catalog query and print the result",
	Long: `Fetch events matching the date range, magnitude bounds and alert level,
optionally restricted to the regions of a GeoJSON feature collection,
and print the result as indented JSON (or a short summary with --summary).`,
	Run: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&flagStart, "start", "", "start date, YYYY-MM-DD")
	queryCmd.Flags().StringVar(&flagEnd, "end", "", "end date, YYYY-MM-DD")
	queryCmd.Flags().Float64Var(&flagMinMag, "min-mag", 0, "minimum magnitude")
	queryCmd.Flags().Float64Var(&flagMaxMag, "max-mag", 10, "maximum magnitude")
	queryCmd.Flags().StringVar(&flagOrderBy, "order-by", "time", "ordering: time, time-asc, magnitude, magnitude-asc")
	queryCmd.Flags().StringVar(&flagAlert, "alert", "", "alert level filter: green, yellow, orange, red")
	queryCmd.Flags().StringVar(&flagRegions, "regions", "", "path to a GeoJSON FeatureCollection of regions")
	queryCmd.Flags().BoolVar(&flagSummary, "summary", false, "print summary statistics instead of the full result")
	_ = queryCmd.MarkFlagRequired("start")
	_ = queryCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runQuery(cmd *cobra.Command, args []string) {
	log := logger.New("cli")

	cfg, err := config.LoadCLI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	criteria, err := buildCriteria()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	client := catalog.New(cfg.CatalogURL, cfg.CatalogTimeout, cfg.MaxRecords, log)
	runner := pipeline.New(client, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	result, err := runner.Run(ctx, criteria)
	if err != nil {
		log.Error("query failed", slog.Any("err", err))
		os.Exit(1)
	}

	if flagSummary {
		printSummary(result.Summary)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error("encode result", slog.Any("err", err))
		os.Exit(1)
	}
}

func buildCriteria() (models.Criteria, error) {
	start, err := parseDate(flagStart)
	if err != nil {
		return models.Criteria{}, fmt.Errorf("--start: %w", err)
	}
	end, err := parseDate(flagEnd)
	if err != nil {
		return models.Criteria{}, fmt.Errorf("--end: %w", err)
	}
	orderBy, err := models.ParseOrderBy(strings.TrimSpace(flagOrderBy))
	if err != nil {
		return models.Criteria{}, fmt.Errorf("--order-by: %w", err)
	}
	alert, err := models.ParseAlertLevel(strings.ToLower(strings.TrimSpace(flagAlert)))
	if err != nil {
		return models.Criteria{}, fmt.Errorf("--alert: %w", err)
	}
	regions, err := loadRegions(flagRegions)
	if err != nil {
		return models.Criteria{}, err
	}

	c := models.Criteria{
		Start:        start,
		End:          end,
		MinMagnitude: flagMinMag,
		MaxMagnitude: flagMaxMag,
		OrderBy:      orderBy,
		AlertLevel:   alert,
		Regions:      regions,
	}
	return c, c.Validate()
}

// loadRegions reads a GeoJSON FeatureCollection and keeps each feature's
// geometry raw, so one broken feature cannot sink the file.
func loadRegions(path string) ([]models.Region, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read regions file: %w", err)
	}

	var fc struct {
		Features []struct {
			Properties struct {
				Name string `json:"name"`
			} `json:"properties"`
			Geometry json.RawMessage `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode regions file: %w", err)
	}

	regions := make([]models.Region, 0, len(fc.Features))
	for _, f := range fc.Features {
		regions = append(regions, models.Region{Name: f.Properties.Name, Geometry: f.Geometry})
	}
	return regions, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	ts, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return ts, nil
}

func printSummary(s stats.Summary) {
	fmt.Printf("events: %d\n", s.Count)
	if s.MeanMagnitude != nil {
		fmt.Printf("mean magnitude: %.2f\n", *s.MeanMagnitude)
	}
	if s.MaxMagnitude != nil {
		fmt.Printf("largest magnitude: %.1f\n", *s.MaxMagnitude)
	}
	if s.MaxDepthKm != nil {
		fmt.Printf("deepest: %.1f km\n", *s.MaxDepthKm)
	}
}
