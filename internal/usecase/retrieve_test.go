package usecase

import (
	"errors"
	"math"
	"testing"
	"time"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
	"go.ngs.io/seaice-tsi/internal/domain"
)

var (
	requested = time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	resolved  = time.Date(2015, 3, 3, 0, 0, 0, 0, time.UTC)
)

// fakeSource serves a 2x3 polar grid. Channels are uniform except cell (1,2),
// which is zero in every channel and so masked by the density check.
type fakeSource struct {
	missing   map[string]bool
	sic       [][]float64
	readErr   error
	sicCalled int
}

var (
	gridLat = [][]float64{{80, 80, 80}, {82, 82, 82}}
	gridLon = [][]float64{{-20, 0, 20}, {-20, 0, 20}}
)

func (s *fakeSource) field(id string, v float64) *domain.Field {
	values := [][]float64{{v, v, v}, {v, v, 0}}
	if id == archive.Concentration {
		values = s.sic
	}
	return &domain.Field{Name: id, Date: resolved, Values: values, Lat: gridLat, Lon: gridLon}
}

func (s *fakeSource) ReadChannel(_ time.Time, channel string) (*domain.Field, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.missing[channel] {
		return nil, nil
	}
	tb := map[string]float64{archive.Channel06V: 2500, archive.Channel18V: 2400, archive.Channel36V: 2300}
	return s.field(channel, tb[channel]), nil
}

func (s *fakeSource) ReadConcentration(_ time.Time) (*domain.Field, error) {
	s.sicCalled++
	if s.missing[archive.Concentration] {
		return nil, nil
	}
	return s.field(archive.Concentration, 0), nil
}

func (s *fakeSource) Locate(day time.Time) (*archive.Location, error) {
	return &archive.Location{Era: archive.EraForDate(day), Path: "fake.he5", Requested: day, Date: resolved}, nil
}

type fakeRecorder struct {
	outcomes map[string]int
	skipped  []int
}

func (r *fakeRecorder) ObserveRetrieval(kind, outcome string, _ time.Duration) {
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[kind+":"+outcome]++
}

func (r *fakeRecorder) ObserveDaysSkipped(_ string, days int) {
	r.skipped = append(r.skipped, days)
}

func expectedTsi() float64 {
	ds := 1.7701 + 0.0175*250 - 0.028*240 + 0.0041*230
	return 1.086*250 + 3.98*math.Log(ds) - 10.7
}

func TestGrid_AppliesConcentrationMask(t *testing.T) {
	src := &fakeSource{sic: [][]float64{{100, 120, 95}, {96, 99, 100}}}
	rec := &fakeRecorder{}
	uc := NewRetrievalUseCase(src, rec)

	grid, err := uc.Grid(requested)
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if grid == nil {
		t.Fatal("expected a grid")
	}

	want := expectedTsi()
	for _, c := range []struct{ i, j int }{{0, 0}, {1, 0}, {1, 1}} {
		if math.Abs(grid.Values[c.i][c.j]-want) > 1e-9 {
			t.Errorf("cell (%d,%d): expected %.6f, got %.6f", c.i, c.j, want, grid.Values[c.i][c.j])
		}
	}
	for _, c := range []struct{ i, j int }{{0, 1}, {0, 2}, {1, 2}} {
		if !math.IsNaN(grid.Values[c.i][c.j]) {
			t.Errorf("cell (%d,%d): expected masked, got %.6f", c.i, c.j, grid.Values[c.i][c.j])
		}
	}
	if grid.Lon[0][0] != 340 || grid.Lon[0][1] != 360 || grid.Lon[0][2] != 20 {
		t.Errorf("unexpected normalised longitudes: %v", grid.Lon[0])
	}
	if !grid.Date.Equal(resolved) {
		t.Errorf("expected data date %s, got %s", resolved, grid.Date)
	}
	if rec.outcomes["grid:ok"] != 1 || len(rec.skipped) != 1 || rec.skipped[0] != 2 {
		t.Errorf("unexpected recorder state: %+v", rec)
	}
}

func TestGrid_MissingInputReturnsNil(t *testing.T) {
	for _, id := range []string{archive.Channel06V, archive.Channel36V, archive.Concentration} {
		rec := &fakeRecorder{}
		src := &fakeSource{missing: map[string]bool{id: true}, sic: [][]float64{{100, 100, 100}, {100, 100, 100}}}
		grid, err := NewRetrievalUseCase(src, rec).Grid(requested)
		if err != nil || grid != nil {
			t.Errorf("missing %s: expected nil grid and nil error, got %v, %v", id, grid, err)
		}
		if rec.outcomes["grid:no_data"] != 1 {
			t.Errorf("missing %s: expected no_data outcome, got %v", id, rec.outcomes)
		}
	}
}

func TestGrid_ReadError(t *testing.T) {
	src := &fakeSource{readErr: errors.New("corrupt file")}
	if _, err := NewRetrievalUseCase(src, nil).Grid(requested); err == nil {
		t.Fatal("expected error")
	}
}

func TestPoint_CoincidentCell(t *testing.T) {
	// A concentration of 0 everywhere would mask the whole grid path.
	src := &fakeSource{sic: [][]float64{{0, 0, 0}, {0, 0, 0}}}
	uc := NewRetrievalUseCase(src, nil)

	res, err := uc.Point(PointRequest{Date: requested, Lat: 82, Lon: 0})
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	if res == nil || res.TsiK == nil {
		t.Fatalf("expected a value, got %+v", res)
	}
	if math.Abs(*res.TsiK-expectedTsi()) > 1e-9 {
		t.Errorf("expected %.6f, got %.6f", expectedTsi(), *res.TsiK)
	}
	if res.GridRow != 1 || res.GridCol != 1 || res.DistanceM != 0 {
		t.Errorf("expected exact match on (1,1), got %+v", res)
	}
	if res.GridLon != 360 {
		t.Errorf("expected normalised grid longitude 360, got %v", res.GridLon)
	}
	if res.RequestedDate != "2015-03-01" || res.DataDate != "2015-03-03" {
		t.Errorf("unexpected dates: %s %s", res.RequestedDate, res.DataDate)
	}
	if src.sicCalled != 0 {
		t.Errorf("point lookup should not read concentration, read %d times", src.sicCalled)
	}
}

func TestPoint_MaskedCell(t *testing.T) {
	uc := NewRetrievalUseCase(&fakeSource{}, nil)
	res, err := uc.Point(PointRequest{Date: requested, Lat: 82.01, Lon: 20.2})
	if err != nil {
		t.Fatalf("Point: %v", err)
	}
	if res.TsiK != nil || !math.IsNaN(res.Value()) {
		t.Errorf("expected masked value for cell (1,2), got %v", *res.TsiK)
	}
	if res.GridRow != 1 || res.GridCol != 2 {
		t.Errorf("expected (1,2), got (%d,%d)", res.GridRow, res.GridCol)
	}
}

func TestPoint_NoData(t *testing.T) {
	src := &fakeSource{missing: map[string]bool{archive.Channel18V: true}}
	res, err := NewRetrievalUseCase(src, nil).Point(PointRequest{Date: requested, Lat: 80, Lon: 0})
	if err != nil || res != nil {
		t.Fatalf("expected nil result and nil error, got %v, %v", res, err)
	}
}

func TestPointRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PointRequest
		wantErr bool
	}{
		{"valid", PointRequest{Date: requested, Lat: 75, Lon: -150}, false},
		{"valid 0-360 longitude", PointRequest{Date: requested, Lat: 75, Lon: 210}, false},
		{"latitude too large", PointRequest{Date: requested, Lat: 91, Lon: 0}, true},
		{"longitude too small", PointRequest{Date: requested, Lat: 75, Lon: -181}, true},
		{"longitude NaN", PointRequest{Date: requested, Lat: 75, Lon: math.NaN()}, true},
		{"missing date", PointRequest{Lat: 75, Lon: 0}, true},
	}
	for _, tt := range tests {
		err := tt.req.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
	if _, err := NewRetrievalUseCase(&fakeSource{}, nil).Point(PointRequest{Lat: 100}); err == nil {
		t.Error("expected Point to reject an invalid request")
	}
}

func TestField(t *testing.T) {
	src := &fakeSource{sic: [][]float64{{100, 120, 95}, {96, 99, 100}}}
	rec := &fakeRecorder{}
	uc := NewRetrievalUseCase(src, rec)

	ch, err := uc.Field(requested, archive.Channel18V)
	if err != nil {
		t.Fatalf("Field 18V: %v", err)
	}
	if ch.Name != archive.Channel18V || ch.Values[0][0] != 2400 || !ch.Date.Equal(resolved) {
		t.Errorf("unexpected channel field: %+v", ch)
	}

	sic, err := uc.Field(requested, archive.Concentration)
	if err != nil {
		t.Fatalf("Field ICECON: %v", err)
	}
	if sic.Values[0][1] != 120 || src.sicCalled != 1 {
		t.Errorf("expected concentration values, got %v", sic.Values)
	}
	if rec.outcomes["field:ok"] != 2 {
		t.Errorf("unexpected outcomes: %v", rec.outcomes)
	}
}

func TestField_UnknownAndMissing(t *testing.T) {
	uc := NewRetrievalUseCase(&fakeSource{missing: map[string]bool{"89H": true}}, nil)

	if _, err := uc.Field(requested, "07V"); !errors.Is(err, archive.ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	f, err := uc.Field(requested, "89H")
	if err != nil || f != nil {
		t.Errorf("missing field: expected nil, nil, got %v, %v", f, err)
	}
}
