// Package coords loads the fixed AMSR 25 km latitude/longitude grids.
package coords

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhs/go-netcdf/netcdf"
	"github.com/sbinet/npyio"

	"go.ngs.io/seaice-tsi/internal/adapter/store/ncvar"
)

// Grid holds the latitude and longitude of every cell of the AMSR grid.
// It is read-only once loaded and shared by all archive reads.
type Grid struct {
	Lat [][]float64
	Lon [][]float64
}

// Shape returns the number of rows and columns of the coordinate grid.
func (g *Grid) Shape() (rows, cols int) {
	if len(g.Lat) == 0 {
		return 0, 0
	}
	return len(g.Lat), len(g.Lat[0])
}

// Load reads the latitude and longitude grids from two auxiliary files.
// Files ending in .npy are read as NumPy arrays, anything else as NetCDF.
func Load(latPath, lonPath string) (*Grid, error) {
	lat, err := loadArray(latPath, []string{"lat", "latitude", "Latitude"})
	if err != nil {
		return nil, fmt.Errorf("failed to load latitude grid: %w", err)
	}
	lon, err := loadArray(lonPath, []string{"lon", "longitude", "Longitude"})
	if err != nil {
		return nil, fmt.Errorf("failed to load longitude grid: %w", err)
	}

	if len(lat) != len(lon) {
		return nil, fmt.Errorf("latitude has %d rows, longitude has %d", len(lat), len(lon))
	}
	for i := range lat {
		if len(lat[i]) != len(lon[i]) {
			return nil, fmt.Errorf("row %d: latitude has %d columns, longitude has %d", i, len(lat[i]), len(lon[i]))
		}
	}
	return &Grid{Lat: lat, Lon: lon}, nil
}

func loadArray(path string, varNames []string) ([][]float64, error) {
	if strings.EqualFold(filepath.Ext(path), ".npy") {
		return loadNpy(path)
	}
	return loadNetCDF(path, varNames)
}

// loadNpy reads a 2D float32 or float64 NumPy array.
func loadNpy(path string) ([][]float64, error) {
	//nolint:gosec // Path comes from configuration.
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read npy header: %w", err)
	}
	shape := r.Header.Descr.Shape
	if len(shape) != 2 {
		return nil, fmt.Errorf("expected 2D array in %s, got shape %v", path, shape)
	}
	if r.Header.Descr.Fortran {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported: %s", path)
	}
	nRows, nCols := shape[0], shape[1]

	var flat []float64
	switch strings.TrimLeft(r.Header.Descr.Type, "<|=") {
	case "f8":
		flat = make([]float64, nRows*nCols)
		if err := r.Read(&flat); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case "f4":
		tmp := make([]float32, nRows*nCols)
		if err := r.Read(&tmp); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		flat = make([]float64, len(tmp))
		for i, v := range tmp {
			flat[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("unsupported npy dtype %q in %s", r.Header.Descr.Type, path)
	}

	values := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		values[i] = flat[i*nCols : (i+1)*nCols]
	}
	return values, nil
}

// loadNetCDF reads the first 2D variable matching one of varNames.
func loadNetCDF(path string, varNames []string) ([][]float64, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file: %w", err)
	}
	defer func() { _ = nc.Close() }()

	for _, name := range varNames {
		v, err := nc.Var(name)
		if err != nil {
			continue
		}
		nRows, nCols, err := ncvar.Shape2D(v)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", name, err)
		}
		return ncvar.Read2D(v, nRows, nCols)
	}
	return nil, fmt.Errorf("coordinate variable not found in %s (tried: %v)", path, varNames)
}
