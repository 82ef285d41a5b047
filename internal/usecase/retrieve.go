package usecase

import (
	"fmt"
	"math"
	"time"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
	"go.ngs.io/seaice-tsi/internal/adapter/spatial"
	"go.ngs.io/seaice-tsi/internal/domain"
)

// FieldSource reads AMSR fields for a day. A nil field with a nil error means
// no data is available for the day.
type FieldSource interface {
	ReadChannel(day time.Time, channel string) (*domain.Field, error)
	ReadConcentration(day time.Time) (*domain.Field, error)
	Locate(day time.Time) (*archive.Location, error)
}

// Recorder observes retrieval outcomes.
type Recorder interface {
	ObserveRetrieval(kind, outcome string, elapsed time.Duration)
	ObserveDaysSkipped(kind string, days int)
}

// Retrieval outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// PointRequest asks for Tsi at the grid cell nearest to a location.
type PointRequest struct {
	Date time.Time
	Lat  float64
	Lon  float64
}

// Validate checks the location ranges.
func (r *PointRequest) Validate() error {
	if math.IsNaN(r.Lat) || r.Lat < -90 || r.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if math.IsNaN(r.Lon) || r.Lon < -180 || r.Lon > 360 {
		return fmt.Errorf("longitude must be between -180 and 360")
	}
	if r.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// PointResult is the Tsi of the grid cell nearest to the requested point.
type PointResult struct {
	RequestedDate string   `json:"requested_date"`
	DataDate      string   `json:"data_date"`
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	GridLat       float64  `json:"grid_lat"`
	GridLon       float64  `json:"grid_lon"`
	GridRow       int      `json:"grid_row"`
	GridCol       int      `json:"grid_col"`
	DistanceM     float64  `json:"distance_m"`
	TsiK          *float64 `json:"tsi_k"` // Nil when the nearest cell is masked.
}

// Value returns the interface temperature, NaN when masked.
func (r *PointResult) Value() float64 {
	if r.TsiK == nil {
		return math.NaN()
	}
	return *r.TsiK
}

// RetrievalUseCase orchestrates snow–ice interface temperature retrievals.
type RetrievalUseCase struct {
	source   FieldSource
	recorder Recorder
}

// NewRetrievalUseCase creates a new retrieval use case. recorder may be nil.
func NewRetrievalUseCase(source FieldSource, recorder Recorder) *RetrievalUseCase {
	return &RetrievalUseCase{
		source:   source,
		recorder: recorder,
	}
}

// Locate resolves the archive file that serves day.
func (uc *RetrievalUseCase) Locate(day time.Time) (*archive.Location, error) {
	return uc.source.Locate(day)
}

// Grid computes the concentration-masked Tsi grid for day. It returns nil
// without error when any input field is unavailable.
func (uc *RetrievalUseCase) Grid(day time.Time) (grid *domain.Grid, err error) {
	start := time.Now()
	defer func() { uc.observe("grid", day, gridDate(grid), err, start) }()

	v6, v18, v36, err := uc.readChannels(day)
	if err != nil || v6 == nil {
		return nil, err
	}
	sic, err := uc.source.ReadConcentration(day)
	if err != nil {
		return nil, fmt.Errorf("failed to read sea ice concentration: %w", err)
	}
	if sic == nil {
		return nil, nil
	}

	return domain.ComputeTsi(v6, v18, v36, sic)
}

// Point computes Tsi without the concentration mask and returns the value at
// the grid cell nearest to the requested location. It returns nil without
// error when any channel is unavailable.
func (uc *RetrievalUseCase) Point(req PointRequest) (result *PointResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	start := time.Now()
	var grid *domain.Grid
	defer func() { uc.observe("point", req.Date, gridDate(grid), err, start) }()

	v6, v18, v36, err := uc.readChannels(req.Date)
	if err != nil || v6 == nil {
		return nil, err
	}
	grid, err = domain.ComputeTsi(v6, v18, v36, nil)
	if err != nil {
		return nil, err
	}

	index, err := spatial.NewIndex(grid.Lat, grid.Lon)
	if err != nil {
		return nil, fmt.Errorf("failed to index grid: %w", err)
	}
	match, err := index.Nearest(req.Lat, req.Lon)
	if err != nil {
		return nil, err
	}

	result = &PointResult{
		RequestedDate: archive.Day(req.Date).Format(time.DateOnly),
		DataDate:      grid.Date.Format(time.DateOnly),
		Lat:           req.Lat,
		Lon:           req.Lon,
		GridLat:       match.Lat,
		GridLon:       match.Lon,
		GridRow:       match.Row,
		GridCol:       match.Col,
		DistanceM:     roundToDecimal(match.DistanceM, 1),
	}
	if v := grid.At(match.Index); !math.IsNaN(v) {
		result.TsiK = &v
	}
	return result, nil
}

// Field reads one archive field as stored: a brightness temperature channel
// (K*10) or the sea ice concentration. It returns nil without error when the
// day has no data.
func (uc *RetrievalUseCase) Field(day time.Time, id string) (field *domain.Field, err error) {
	if !archive.IsKnownField(id) {
		return nil, fmt.Errorf("%w: %q", archive.ErrUnknownField, id)
	}

	start := time.Now()
	defer func() {
		var date time.Time
		if field != nil {
			date = field.Date
		}
		uc.observe("field", day, date, err, start)
	}()

	if id == archive.Concentration {
		field, err = uc.source.ReadConcentration(day)
	} else {
		field, err = uc.source.ReadChannel(day, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", id, err)
	}
	return field, nil
}

// readChannels reads the 6, 18 and 36 GHz vertical channels. All three are
// nil when any of them is unavailable.
func (uc *RetrievalUseCase) readChannels(day time.Time) (v6, v18, v36 *domain.Field, err error) {
	channels := []string{archive.Channel06V, archive.Channel18V, archive.Channel36V}
	fields := make([]*domain.Field, len(channels))
	for i, ch := range channels {
		fields[i], err = uc.source.ReadChannel(day, ch)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read channel %s: %w", ch, err)
		}
		if fields[i] == nil {
			return nil, nil, nil, nil
		}
	}
	return fields[0], fields[1], fields[2], nil
}

// observe records a retrieval. A zero dataDate means no data was found.
func (uc *RetrievalUseCase) observe(kind string, day, dataDate time.Time, err error, start time.Time) {
	if uc.recorder == nil {
		return
	}
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeError
	case dataDate.IsZero():
		outcome = OutcomeNoData
	default:
		skipped := int(dataDate.Sub(archive.Day(day)).Hours() / 24)
		uc.recorder.ObserveDaysSkipped(kind, skipped)
	}
	uc.recorder.ObserveRetrieval(kind, outcome, time.Since(start))
}

func gridDate(g *domain.Grid) time.Time {
	if g == nil {
		return time.Time{}
	}
	return g.Date
}

// roundToDecimal rounds val to precision decimal places.
func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}
