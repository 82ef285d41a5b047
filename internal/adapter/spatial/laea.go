// Package spatial reprojects AMSR grid coordinates to EASE-Grid 2.0 North and
// finds the grid cell nearest to a geographic point.
package spatial

import "math"

// WGS84 ellipsoid.
const (
	semiMajorM = 6378137.0
	flattening = 1 / 298.257223563
)

var (
	ecc2 = flattening * (2 - flattening)
	ecc  = math.Sqrt(ecc2)
	qp   = authalicQ(1)
)

// Project maps geographic coordinates (EPSG:4326, degrees) to EASE-Grid 2.0
// North (EPSG:6931), the polar aspect of the Lambert azimuthal equal-area
// projection on WGS84 with lat_0=90 and lon_0=0. Returns metres.
//
// Snyder (1987), eqs. 3-12, 21-30 and 21-31:
//
//	ρ = a·sqrt(qp − q)
//	x = ρ·sin(λ)
//	y = −ρ·cos(λ)
func Project(lat, lon float64) (x, y float64) {
	φ := toRad(lat)
	λ := toRad(lon)
	q := authalicQ(math.Sin(φ))
	ρ := semiMajorM * math.Sqrt(math.Max(qp-q, 0))
	return ρ * math.Sin(λ), -ρ * math.Cos(λ)
}

// authalicQ evaluates q for sin(φ) on the WGS84 ellipsoid.
func authalicQ(sinφ float64) float64 {
	esin := ecc * sinφ
	return (1 - ecc2) * (sinφ/(1-esin*esin) - 1/(2*ecc)*math.Log((1-esin)/(1+esin)))
}

func toRad(d float64) float64 { return d * math.Pi / 180 }
