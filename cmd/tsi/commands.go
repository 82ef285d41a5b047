package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
	"go.ngs.io/seaice-tsi/internal/adapter/store/coords"
	"go.ngs.io/seaice-tsi/internal/config"
	"go.ngs.io/seaice-tsi/internal/usecase"
)

const version = "0.1.0"

// options are the flags shared by every subcommand. Defaults come from the
// same environment variables the server reads.
type options struct {
	cfg      config.Config
	date     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cfg, err := config.Load()
	if err != nil {
		// Fall back to built-in defaults; the flags can still fix it.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.Config{
			Root:          "./data/amsr",
			LatPath:       filepath.Join("data", "amsr", "amsr_25km_lat.npy"),
			LonPath:       filepath.Join("data", "amsr", "amsr_25km_lon.npy"),
			MaxSearchDays: archive.DefaultMaxSearchDays,
			LogLevel:      "info",
		}
	}
	opts.cfg = cfg

	root := &cobra.Command{
		Use:           "tsi",
		Short:         "AMSR snow–ice interface temperature retrieval",
		Long:          `Compute snow–ice interface temperature (Tsi) over Arctic sea ice from AMSR-E and AMSR2 L3 25 km daily brightness temperatures (Kilic et al., 2021).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.validate()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfg.Root, "root", cfg.Root, "archive directory (env AMSR_ROOT)")
	pf.StringVar(&opts.cfg.LatPath, "lat-grid", cfg.LatPath, "latitude grid file, .npy or NetCDF (env AMSR_LAT_PATH)")
	pf.StringVar(&opts.cfg.LonPath, "lon-grid", cfg.LonPath, "longitude grid file, .npy or NetCDF (env AMSR_LON_PATH)")
	pf.IntVar(&opts.cfg.MaxSearchDays, "max-search-days", cfg.MaxSearchDays, "days to search forward for a missing AMSR2 file")
	pf.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level")
	pf.StringVar(&opts.date, "date", "", "day to retrieve, YYYY-MM-DD")

	root.AddCommand(newGridCmd(opts), newFieldCmd(opts), newPointCmd(opts), newLocateCmd(opts))
	return root
}

func newGridCmd(opts *options) *cobra.Command {
	var withValues bool
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Compute the concentration-masked Tsi grid for a day",
		Example: `  # Summary statistics only
  tsi grid --date 2015-03-01

  # Every cell, masked cells as null
  tsi grid --date 2015-03-01 --values`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			uc, err := opts.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			grid, err := uc.Grid(day)
			if err != nil {
				return err
			}
			if grid == nil {
				return noData(day)
			}
			return writeJSON(cmd.OutOrStdout(), grid.View(day, withValues))
		},
	}
	cmd.Flags().BoolVar(&withValues, "values", false, "include every cell with its coordinates")
	return cmd
}

func newFieldCmd(opts *options) *cobra.Command {
	var (
		id         string
		withValues bool
	)
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Read one archive field (brightness temperature channel or ICECON) for a day",
		Long: `Read a north hemisphere daily field as stored in the archive.

Channels 06H 06V 10H 10V 18H 18V 23H 23V 36H 36V 89H 89V are brightness
temperatures in K*10. ICECON is the sea ice concentration in percent; 120
flags land and missing pixels.`,
		Example: `  tsi field --date 2015-03-01 --id 18V
  tsi field --date 2005-01-10 --id ICECON --values`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			if !archive.IsKnownField(id) {
				return fmt.Errorf("unknown field %q, expected one of %v", id, archive.KnownFields())
			}
			uc, err := opts.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			field, err := uc.Field(day, id)
			if err != nil {
				return err
			}
			if field == nil {
				return noData(day)
			}
			return writeJSON(cmd.OutOrStdout(), field.View(day, withValues))
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "field identifier, e.g. 18V or ICECON")
	cmd.Flags().BoolVar(&withValues, "values", false, "include every cell with its coordinates")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPointCmd(opts *options) *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:     "point",
		Short:   "Look up Tsi at the grid cell nearest to a location",
		Example: `  tsi point --date 2015-03-01 --lat 82.5 --lon -45`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			req := usecase.PointRequest{Date: day, Lat: lat, Lon: lon}
			if err := req.Validate(); err != nil {
				return err
			}
			uc, err := opts.useCase(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			result, err := uc.Point(req)
			if err != nil {
				return err
			}
			if result == nil {
				return noData(day)
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", math.NaN(), "latitude in degrees north")
	cmd.Flags().Float64Var(&lon, "lon", math.NaN(), "longitude in degrees east, -180..360")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func newLocateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the archive file that serves a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := opts.day()
			if err != nil {
				return err
			}
			logger, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			loc, err := archive.NewLocator(opts.cfg.Root, opts.cfg.MaxSearchDays, logger).Locate(day)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), loc)
		},
	}
}

func (o *options) validate() error {
	if o.cfg.MaxSearchDays < 1 {
		return fmt.Errorf("--max-search-days must be at least 1, got %d", o.cfg.MaxSearchDays)
	}
	return nil
}

func (o *options) day() (time.Time, error) {
	if o.date == "" {
		return time.Time{}, fmt.Errorf("--date is required")
	}
	day, err := time.Parse(time.DateOnly, o.date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (expected YYYY-MM-DD): %w", err)
	}
	return day, nil
}

func (o *options) logger(w io.Writer) (zerolog.Logger, error) {
	return config.NewLogger(o.logLevel, w, true)
}

// useCase loads the coordinate grid and wires the archive.
func (o *options) useCase(logOut io.Writer) (*usecase.RetrievalUseCase, error) {
	logger, err := o.logger(logOut)
	if err != nil {
		return nil, err
	}
	grid, err := coords.Load(o.cfg.LatPath, o.cfg.LonPath)
	if err != nil {
		return nil, err
	}
	amsr := archive.New(o.cfg.Archive(logger), grid)
	return usecase.NewRetrievalUseCase(amsr, nil), nil
}

func noData(day time.Time) error {
	if archive.EraForDate(day) == archive.EraGap {
		return fmt.Errorf("%s is within AMSR-E and AMSR2 data gap", day.Format(time.DateOnly))
	}
	return fmt.Errorf("no AMSR data found for %s", day.Format(time.DateOnly))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
