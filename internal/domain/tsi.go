package domain

import (
	"fmt"
	"math"
)

// Kilic et al. (2021) regression coefficients.
const (
	// DensityIntercept is the constant term of the snow density regression.
	// A density exactly equal to it means every channel input was zero.
	DensityIntercept = 1.7701
	densityCoef6V    = 0.0175
	densityCoef18V   = -0.028
	densityCoef36V   = 0.0041

	tsiCoef6V    = 1.086
	tsiCoefLogDs = 3.98
	tsiIntercept = -10.7
)

// BrightnessScale converts stored brightness temperatures (K*10) to kelvin.
const BrightnessScale = 10.0

// Sea ice concentration quality thresholds.
const (
	// ConcentrationFlag marks land/missing pixels in the SIC field; it is not a percentage.
	ConcentrationFlag = 120.0
	// MinConcentration is exclusive: pixels need SIC > 95 to be kept.
	MinConcentration = 95.0
)

// SnowDensity evaluates the snow density regression for one pixel of 6, 18
// and 36 GHz vertically polarised brightness temperatures (K).
// Masked pixels are returned as NaN.
func SnowDensity(v6, v18, v36 float64) float64 {
	ds := DensityIntercept + densityCoef6V*v6 + densityCoef18V*v18 + densityCoef36V*v36
	if ds == DensityIntercept || !(ds > 0) {
		return math.NaN()
	}
	return ds
}

// InterfaceTemperature returns Tsi (K) for a 6V brightness temperature and a
// snow density from SnowDensity. The log is only taken for valid densities.
func InterfaceTemperature(v6, ds float64) float64 {
	if math.IsNaN(ds) || !(ds > 0) {
		return math.NaN()
	}
	tsi := tsiCoef6V*v6 + tsiCoefLogDs*math.Log(ds) + tsiIntercept
	if !(tsi > 0) {
		return math.NaN()
	}
	return tsi
}

// NormalizeLon shifts non-positive longitudes by +360 so the output axis is
// non-negative. Zero maps to 360.
func NormalizeLon(lon float64) float64 {
	if lon > 0 {
		return lon
	}
	return lon + 360
}

// ConcentrationValid reports whether a SIC pixel passes the quality mask.
func ConcentrationValid(sic float64) bool {
	return sic != ConcentrationFlag && sic > MinConcentration
}

// ComputeTsi evaluates the interface temperature over a full grid.
//
// Channel fields hold raw archive values (K*10). When sic is non-nil the
// concentration mask is applied to the channels first; the point lookup path
// passes nil and skips it.
func ComputeTsi(v6, v18, v36, sic *Field) (*Grid, error) {
	if v6 == nil || v18 == nil || v36 == nil {
		return nil, fmt.Errorf("all three channel fields are required")
	}
	fields := []*Field{v6, v18, v36}
	if sic != nil {
		fields = append(fields, sic)
	}
	for _, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s field: %w", f.Name, err)
		}
		if !sameShape(f.Values, v6.Values) {
			return nil, fmt.Errorf("field %s shape does not match %s", f.Name, v6.Name)
		}
	}

	nRows := len(v6.Values)
	values := make([][]float64, nRows)
	lon := make([][]float64, nRows)
	lat := make([][]float64, nRows)

	for i := 0; i < nRows; i++ {
		nCols := len(v6.Values[i])
		values[i] = make([]float64, nCols)
		lon[i] = make([]float64, nCols)
		lat[i] = append([]float64(nil), v6.Lat[i]...)
		for j := 0; j < nCols; j++ {
			c6 := v6.Values[i][j] / BrightnessScale
			c18 := v18.Values[i][j] / BrightnessScale
			c36 := v36.Values[i][j] / BrightnessScale
			if sic != nil && !ConcentrationValid(sic.Values[i][j]) {
				c6, c18, c36 = math.NaN(), math.NaN(), math.NaN()
			}
			ds := SnowDensity(c6, c18, c36)
			values[i][j] = InterfaceTemperature(c6, ds)
			lon[i][j] = NormalizeLon(v6.Lon[i][j])
		}
	}

	return &Grid{
		Name:   "tsi",
		Date:   v6.Date,
		Values: values,
		Lat:    lat,
		Lon:    lon,
	}, nil
}

func sameShape(a, b [][]float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
	}
	return true
}
