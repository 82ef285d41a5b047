// Package main provides the sea ice interface temperature HTTP server.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
	"go.ngs.io/seaice-tsi/internal/adapter/store/coords"
	"go.ngs.io/seaice-tsi/internal/config"
	httpHandler "go.ngs.io/seaice-tsi/internal/http"
	"go.ngs.io/seaice-tsi/internal/metrics"
	"go.ngs.io/seaice-tsi/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("tsi-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.LogLevel, os.Stdout, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info().
		Str("port", cfg.Port).
		Str("archive", cfg.Root).
		Int("max_search_days", cfg.MaxSearchDays).
		Msg("Starting Tsi API server")

	// The coordinate grid is fixed for every file, so it is loaded once.
	grid, err := coords.Load(cfg.LatPath, cfg.LonPath)
	if err != nil {
		logger.Fatal().Err(err).Str("lat", cfg.LatPath).Str("lon", cfg.LonPath).
			Msg("Failed to load coordinate grid")
	}
	rows, cols := grid.Shape()
	logger.Info().Int("rows", rows).Int("cols", cols).Msg("Coordinate grid loaded")

	// Initialize archive and use case.
	amsr := archive.New(cfg.Archive(logger), grid)
	collector := metrics.NewCollector("tsi")
	retrievalUC := usecase.NewRetrievalUseCase(amsr, collector)

	// Setup router.
	router := httpHandler.SetupRouter(retrievalUC, collector, cfg.CORSAllowedOrigins, logger)

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", addr).Msgf("Health check: http://localhost:%s/health", cfg.Port)

	if err := router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Tsi API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  tsi-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  AMSR_ROOT               Directory holding AMSR-E .hdf and AMSR2 .he5 files (default: ./data/amsr)")
	fmt.Println("  AMSR_LAT_PATH           Latitude grid, .npy or NetCDF (default: $AMSR_ROOT/amsr_25km_lat.npy)")
	fmt.Println("  AMSR_LON_PATH           Longitude grid, .npy or NetCDF (default: $AMSR_ROOT/amsr_25km_lon.npy)")
	fmt.Println("  AMSR_MAX_SEARCH_DAYS    Days to search forward for a missing AMSR2 file (default: 31)")
	fmt.Println("  LOG_LEVEL               debug, info, warn or error (default: info)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET /health                              Health check")
	fmt.Println("  GET /v1/eras                             Sensor eras and the data gap")
	fmt.Println("  GET /v1/tsi/grid?date=YYYY-MM-DD         Masked Tsi grid summary (&values=true for cells)")
	fmt.Println("  GET /v1/tsi/point?date=&lat=&lon=        Tsi at the nearest grid cell")
	fmt.Println("  GET /v1/tsi/locate?date=YYYY-MM-DD       Archive file serving a date")
	fmt.Println("  GET /v1/fields/:id?date=YYYY-MM-DD       Archive field as stored, e.g. 18V or ICECON")
	fmt.Println("  GET /metrics                             Prometheus metrics")
	fmt.Println()
}
