package domain

import (
	"math"
	"time"
)

// SummaryView is a Summary for JSON output. NaN statistics become null.
type SummaryView struct {
	Valid  int      `json:"valid"`
	Total  int      `json:"total"`
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Mean   *float64 `json:"mean"`
	StdDev *float64 `json:"std_dev"`
}

// View converts s for JSON output.
func (s Summary) View() SummaryView {
	return SummaryView{
		Valid:  s.Valid,
		Total:  s.Total,
		Min:    Nullable(s.Min),
		Max:    Nullable(s.Max),
		Mean:   Nullable(s.Mean),
		StdDev: Nullable(s.StdDev),
	}
}

// GridView is a Field or Grid for JSON output. Masked cells are null and the
// cell arrays are only present when requested.
type GridView struct {
	Name          string       `json:"name"`
	RequestedDate string       `json:"requested_date"`
	DataDate      string       `json:"data_date"`
	Rows          int          `json:"rows"`
	Cols          int          `json:"cols"`
	Summary       SummaryView  `json:"summary"`
	Values        [][]*float64 `json:"values,omitempty"`
	Lat           [][]float64  `json:"lat,omitempty"`
	Lon           [][]float64  `json:"lon,omitempty"`
}

// View converts g for JSON output. requested is the day that was asked for.
func (g *Grid) View(requested time.Time, withValues bool) GridView {
	return newView(g.Name, requested, g.Date, g.Values, g.Lat, g.Lon, g.Summary(), withValues)
}

// View converts f for JSON output. requested is the day that was asked for.
func (f *Field) View(requested time.Time, withValues bool) GridView {
	return newView(f.Name, requested, f.Date, f.Values, f.Lat, f.Lon, f.Summary(), withValues)
}

func newView(name string, requested, date time.Time, values, lat, lon [][]float64, s Summary, withValues bool) GridView {
	v := GridView{
		Name:          name,
		RequestedDate: requested.Format(time.DateOnly),
		DataDate:      date.Format(time.DateOnly),
		Rows:          len(values),
		Summary:       s.View(),
	}
	if len(values) > 0 {
		v.Cols = len(values[0])
	}
	if withValues {
		v.Values = NullableGrid(values)
		v.Lat, v.Lon = lat, lon
	}
	return v
}

// Nullable returns nil for NaN so the value encodes as JSON null.
func Nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

// NullableGrid applies Nullable to every cell.
func NullableGrid(values [][]float64) [][]*float64 {
	out := make([][]*float64, len(values))
	for i, row := range values {
		out[i] = make([]*float64, len(row))
		for j, v := range row {
			out[i][j] = Nullable(v)
		}
	}
	return out
}
