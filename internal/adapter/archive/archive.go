package archive

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"go.ngs.io/seaice-tsi/internal/adapter/store"
	"go.ngs.io/seaice-tsi/internal/adapter/store/coords"
	"go.ngs.io/seaice-tsi/internal/adapter/store/hdf4"
	"go.ngs.io/seaice-tsi/internal/adapter/store/hdfeos5"
	"go.ngs.io/seaice-tsi/internal/domain"
)

// Field identifiers of the L3 25 km daily products.
const (
	Channel06V    = "06V"
	Channel18V    = "18V"
	Channel36V    = "36V"
	Concentration = "ICECON"
)

// ErrUnknownField is returned for identifiers that are not L3 25 km fields.
var ErrUnknownField = errors.New("unknown AMSR field")

var knownFields = []string{
	"06H", Channel06V, "10H", "10V", "18H", Channel18V,
	"23H", "23V", "36H", Channel36V, "89H", "89V",
	Concentration,
}

// IsKnownField reports whether id names an L3 25 km field.
func IsKnownField(id string) bool {
	return slices.Contains(knownFields, id)
}

// KnownFields returns the field identifiers in archive order.
func KnownFields() []string {
	return slices.Clone(knownFields)
}

// DatasetName returns the north hemisphere daily dataset name for a field,
// e.g. SI_25km_NH_06V_DAY.
func DatasetName(id string) string {
	return "SI_25km_NH_" + id + "_DAY"
}

// Config configures an Archive.
type Config struct {
	Root          string // Archive directory holding the AMSR-E and AMSR2 files.
	MaxSearchDays int    // Forward search window for missing AMSR2 days.
	Logger        zerolog.Logger

	// Readers overrides the per-era file format readers.
	Readers map[Era]store.FieldReader
}

// DefaultConfig returns the default archive configuration for root.
func DefaultConfig(root string) Config {
	return Config{
		Root:          root,
		MaxSearchDays: DefaultMaxSearchDays,
		Logger:        zerolog.Nop(),
	}
}

// Archive reads AMSR fields for a day, pairing them with the fixed grid.
type Archive struct {
	// mu serialises file reads; libnetcdf and libhdf5 are not thread-safe.
	mu sync.Mutex

	locator *Locator
	grid    *coords.Grid
	readers map[Era]store.FieldReader
	logger  zerolog.Logger
}

// New creates an archive over cfg.Root using a coordinate grid loaded with
// coords.Load.
func New(cfg Config, grid *coords.Grid) *Archive {
	readers := map[Era]store.FieldReader{
		EraAMSRE: hdf4.NewReader(),
		EraAMSR2: hdfeos5.NewReader(),
	}
	for era, r := range cfg.Readers {
		readers[era] = r
	}
	return &Archive{
		locator: NewLocator(cfg.Root, cfg.MaxSearchDays, cfg.Logger),
		grid:    grid,
		readers: readers,
		logger:  cfg.Logger,
	}
}

// Locate resolves the file for day without reading it.
func (a *Archive) Locate(day time.Time) (*Location, error) {
	return a.locator.Locate(day)
}

// ReadChannel reads a brightness temperature channel (e.g. "06V") for day.
// Values are K*10 as stored. A nil field with a nil error means no data:
// the day is in the sensor gap or no file was found.
func (a *Archive) ReadChannel(day time.Time, channel string) (*domain.Field, error) {
	if channel == Concentration {
		return nil, fmt.Errorf("%w: %s is not a brightness temperature channel", ErrUnknownField, channel)
	}
	return a.readField(day, channel)
}

// ReadConcentration reads the sea ice concentration field for day.
// A nil field with a nil error means no data.
func (a *Archive) ReadConcentration(day time.Time) (*domain.Field, error) {
	return a.readField(day, Concentration)
}

func (a *Archive) readField(day time.Time, id string) (*domain.Field, error) {
	if !IsKnownField(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, id)
	}

	loc, err := a.locator.Locate(day)
	switch {
	case errors.Is(err, ErrSensorGap):
		a.logger.Warn().Str("date", Day(day).Format(time.DateOnly)).Str("field", id).
			Msg("Date is within AMSR-E and AMSR2 data gap")
		return nil, nil
	case errors.Is(err, ErrNoData):
		a.logger.Warn().Str("date", Day(day).Format(time.DateOnly)).Str("field", id).
			Err(err).Msg("AMSR data not found")
		return nil, nil
	case err != nil:
		return nil, err
	}

	reader, ok := a.readers[loc.Era]
	if !ok {
		return nil, fmt.Errorf("no reader configured for %s files", loc.Era)
	}
	a.mu.Lock()
	values, err := reader.ReadField(loc.Path, DatasetName(id))
	a.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s for %s: %w", id, loc.Date.Format(time.DateOnly), err)
	}

	rows, cols := a.grid.Shape()
	nCols := 0
	if len(values) > 0 {
		nCols = len(values[0])
	}
	if len(values) != rows || nCols != cols {
		return nil, fmt.Errorf("%s in %s is %dx%d, coordinate grid is %dx%d",
			id, loc.Path, len(values), nCols, rows, cols)
	}

	a.logger.Debug().Str("field", id).Str("path", loc.Path).
		Str("date", loc.Date.Format(time.DateOnly)).Msg("read AMSR field")

	return &domain.Field{
		Name:   id,
		Date:   loc.Date,
		Values: values,
		Lat:    a.grid.Lat,
		Lon:    a.grid.Lon,
	}, nil
}
