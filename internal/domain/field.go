// Package domain holds the gridded AMSR fields and the Kilic et al. (2021)
// snow–ice interface temperature retrieval.
package domain

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Field is one 2D archive dataset paired with the fixed AMSR coordinate grid.
type Field struct {
	Name   string      // Field identifier, e.g. "06V" or "ICECON".
	Date   time.Time   // Day of the file the values were read from.
	Values [][]float64 // Values[y][x] as stored in the archive.
	Lat    [][]float64 // Latitude of each cell (degrees north).
	Lon    [][]float64 // Longitude of each cell (degrees east).
}

// Validate checks that values and coordinates share one rectangular shape.
func (f *Field) Validate() error {
	return validateShape(f.Values, f.Lat, f.Lon)
}

// Grid is a derived field, e.g. the interface temperature. Masked cells are NaN
// and longitudes are normalised to (0, 360].
type Grid struct {
	Name   string
	Date   time.Time
	Values [][]float64
	Lat    [][]float64
	Lon    [][]float64
}

// Validate checks that values and coordinates share one rectangular shape.
func (g *Grid) Validate() error {
	return validateShape(g.Values, g.Lat, g.Lon)
}

// Shape returns the number of rows and columns.
func (g *Grid) Shape() (rows, cols int) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	return len(g.Values), len(g.Values[0])
}

// At returns the value at a flat row-major index.
func (g *Grid) At(flat int) float64 {
	_, cols := g.Shape()
	return g.Values[flat/cols][flat%cols]
}

// Summary describes the unmasked cells of a grid.
type Summary struct {
	Valid  int     `json:"valid"`
	Total  int     `json:"total"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summary computes statistics over the non-NaN cells. With no valid cells
// the statistics are NaN.
func (g *Grid) Summary() Summary {
	return summarize(g.Values)
}

// Summary computes statistics over the non-NaN values of the field.
func (f *Field) Summary() Summary {
	return summarize(f.Values)
}

func summarize(values [][]float64) Summary {
	var valid []float64
	total := 0
	for _, row := range values {
		total += len(row)
		for _, v := range row {
			if !math.IsNaN(v) {
				valid = append(valid, v)
			}
		}
	}

	s := Summary{Valid: len(valid), Total: total}
	if len(valid) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(valid)
	s.Max = floats.Max(valid)
	if len(valid) == 1 {
		s.Mean = valid[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(valid, nil)
	return s
}

func validateShape(values, lat, lon [][]float64) error {
	if len(values) == 0 {
		return fmt.Errorf("grid has no rows")
	}
	if len(lat) != len(values) || len(lon) != len(values) {
		return fmt.Errorf("coordinate rows (lat %d, lon %d) must match value rows (%d)", len(lat), len(lon), len(values))
	}
	nCols := len(values[0])
	if nCols == 0 {
		return fmt.Errorf("grid has no columns")
	}
	for i := range values {
		if len(values[i]) != nCols {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(values[i]), nCols)
		}
		if len(lat[i]) != nCols || len(lon[i]) != nCols {
			return fmt.Errorf("row %d coordinates do not match %d columns", i, nCols)
		}
	}
	return nil
}
