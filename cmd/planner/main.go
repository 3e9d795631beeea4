package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/joho/godotenv"

	"irrigation-plan-service/internal/adapters/catalogstore"
	"irrigation-plan-service/internal/adapters/forecast"
	"irrigation-plan-service/internal/api/dto"
	"irrigation-plan-service/internal/catalog"
	"irrigation-plan-service/internal/config"
	"irrigation-plan-service/internal/domain"
	"irrigation-plan-service/internal/logging"
	"irrigation-plan-service/internal/platform/db"
	"irrigation-plan-service/internal/platform/obs"
	"irrigation-plan-service/internal/ports"
	"irrigation-plan-service/internal/services"
)

// main is the application composition root: it wires the offline forecast
// source and the coefficient catalog behind their ports, selects the nearest
// station, computes the plan, and prints the serialized result to stdout.

type flags struct {
	lat, lon float64
	date     string
	points   string
	k        int

	mode       string
	crop       string
	stage      string
	areaM2     float64
	areaDunam  float64
	method     string
	efficiency float64

	plantProfile string
	potVolume    float64
	potDiameter  float64
	placement    string
}

type output struct {
	Selection   dto.SelectionResponse   `json:"selection"`
	Neighbors   []dto.SelectionResponse `json:"neighbors,omitempty"`
	Diagnostics dto.DiagnosticsResponse `json:"diagnostics"`
	Plan        dto.PlanResponse        `json:"plan"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level)

	f := parseFlags(cfg)

	if math.IsNaN(f.lat) || math.IsNaN(f.lon) {
		logging.Fatalf("-lat and -lon are required")
	}

	date, err := time.ParseInLocation("2006-01-02", f.date, time.UTC)
	if err != nil {
		logging.Fatalf("invalid -date %q: %v", f.date, err)
	}

	profile, err := buildProfile(f)
	if err != nil {
		logging.Fatalf("profile: %v", err)
	}

	coeffs, err := openCatalog(cfg)
	if err != nil {
		logging.Fatalf("catalog: %v", err)
	}

	ctx := context.WithValue(context.Background(), obs.RunIDKey, time.Now().UTC().Format("20060102T150405"))
	source := forecast.NewFileSource(f.points)
	points, err := source.Points(ctx, date)
	if err != nil {
		logging.Fatalf("forecast: %v", err)
	}

	diagnostics := services.Diagnose(points)
	if diagnostics.SkippedCount > 0 {
		slog.Warn("skipping observation points with invalid coordinates",
			"total", diagnostics.TotalPoints,
			"skipped", diagnostics.SkippedCount,
		)
	}

	user := domain.Coordinate{Lat: f.lat, Lon: f.lon}
	selection, err := services.PickNearest(user, points)
	if err != nil {
		fatalTyped(err)
	}
	slog.Info("station selected",
		"name", selection.Point.Name,
		"area", selection.Point.Area,
		"distance_km", selection.DistanceKM,
	)

	var neighbors []dto.SelectionResponse
	if f.k > 1 {
		ranked, err := services.KNearest(user, points, f.k)
		if err != nil {
			fatalTyped(err)
		}
		for i := range ranked {
			neighbors = append(neighbors, dto.FromSelection(&ranked[i]))
		}
	}

	plan, err := computePlan(ctx, profile, selection.Point, coeffs)
	if err != nil {
		fatalTyped(err)
	}

	out := output{
		Selection:   dto.FromSelection(selection),
		Neighbors:   neighbors,
		Diagnostics: dto.FromDiagnostics(diagnostics),
		Plan:        dto.FromPlan(plan),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logging.Fatalf("encode output: %v", err)
	}
}

func parseFlags(cfg *config.Config) flags {
	var f flags

	flag.Float64Var(&f.lat, "lat", math.NaN(), "user latitude (required)")
	flag.Float64Var(&f.lon, "lon", math.NaN(), "user longitude (required)")
	flag.StringVar(&f.date, "date", time.Now().UTC().Format("2006-01-02"), "plan date (YYYY-MM-DD)")
	flag.StringVar(&f.points, "points", cfg.Forecast.PointsPath, "observation points JSON file")
	flag.IntVar(&f.k, "k", cfg.Matching.NearestK, "ranked stations to report")

	flag.StringVar(&f.mode, "mode", "farm", `profile mode: "farm" or "plant"`)
	flag.StringVar(&f.crop, "crop", "", "crop identifier (farm mode)")
	flag.StringVar(&f.stage, "stage", "", "growth stage: initial, mid, end (farm mode)")
	flag.Float64Var(&f.areaM2, "area-m2", math.NaN(), "area in square meters (farm mode)")
	flag.Float64Var(&f.areaDunam, "area-dunam", math.NaN(), "area in dunams (farm mode)")
	flag.StringVar(&f.method, "method", "", "irrigation method: drip, sprinkler (farm mode)")
	flag.Float64Var(&f.efficiency, "efficiency", math.NaN(), "explicit application efficiency in (0, 1]")

	flag.StringVar(&f.plantProfile, "plant-profile", "", "plant profile identifier (plant mode)")
	flag.Float64Var(&f.potVolume, "pot-volume", math.NaN(), "pot volume in liters (plant mode)")
	flag.Float64Var(&f.potDiameter, "pot-diameter", math.NaN(), "pot diameter in centimeters (plant mode)")
	flag.StringVar(&f.placement, "placement", "", "indoor or outdoor (plant mode)")

	flag.Parse()
	return f
}

func buildProfile(f flags) (domain.Profile, error) {
	efficiency := optional(f.efficiency)

	switch domain.Mode(f.mode) {
	case domain.ModeFarm:
		return domain.NewFarmProfile(
			f.crop,
			domain.Stage(f.stage),
			optional(f.areaM2),
			optional(f.areaDunam),
			domain.Method(f.method),
			efficiency,
		)
	case domain.ModePlant:
		return domain.NewPlantProfile(
			f.plantProfile,
			optional(f.potVolume),
			optional(f.potDiameter),
			domain.Placement(f.placement),
			efficiency,
		)
	default:
		return domain.Profile{}, fmt.Errorf("invalid -mode %q", f.mode)
	}
}

// optional maps an unset (NaN) flag to nil.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func computePlan(ctx context.Context, profile domain.Profile, point domain.ObservationPoint, coeffs ports.CoefficientResolver) (plan *domain.Plan, err error) {
	defer obs.Time(ctx, "compute_plan")(&err)
	return services.ComputePlan(profile, point, coeffs, services.DefaultPulsePolicy)
}

func openCatalog(cfg *config.Config) (ports.CoefficientResolver, error) {
	if cfg.Catalog.Source == config.CatalogSourceSQLite {
		conn, err := db.Open(cfg.Catalog.DBPath)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return catalogstore.LoadCatalog(conn)
	}
	return catalog.Default()
}

// fatalTyped maps the engine's typed failures to user-facing messages.
func fatalTyped(err error) {
	var rangeErr *domain.CoordinateRangeError
	var invalidErr *domain.InvalidCoordinatesError
	var cropErr *domain.UnknownCropError
	var profileErr *domain.UnknownProfileError
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &rangeErr):
		logging.Fatalf("invalid coordinate: %v", rangeErr)
	case errors.As(err, &invalidErr):
		logging.Fatalf("no usable observation points: %v", invalidErr)
	case errors.As(err, &cropErr):
		logging.Fatalf("unknown crop: %v", cropErr)
	case errors.As(err, &profileErr):
		logging.Fatalf("unknown plant profile: %v", profileErr)
	case errors.As(err, &validationErr):
		logging.Fatalf("invalid input: %v", validationErr)
	default:
		logging.Fatalf("%v", err)
	}
}
